package websocket

import "github.com/rs/zerolog/log"

// GlobalTopic receives every published message.
const GlobalTopic = "global"

type topicMessage struct {
	topics []string
	data   []byte
}

type directMessage struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients and fans messages out to them. All
// client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// A map of topics to the set of clients subscribed to it.
	subscriptions map[string]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	broadcast chan topicMessage
	direct    chan directMessage
	done      chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcast:     make(chan topicMessage, 64),
		direct:        make(chan directMessage, 16),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client, client.Topic)
			log.Info().Int("total_clients", len(h.clients)).Str("topic", client.Topic).Msg("Client connected")
		case client := <-h.Unregister:
			if h.clients[client] {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.broadcast:
			for _, topic := range msg.topics {
				for client := range h.subscriptions[topic] {
					h.deliver(client, msg.data)
				}
			}
		case msg := <-h.direct:
			if h.clients[msg.client] {
				h.deliver(msg.client, msg.data)
			}
		}
	}
}

// Stop ends Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Add registers client unless the hub has stopped.
func (h *Hub) Add(client *Client) {
	select {
	case h.Register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Remove unregisters client unless the hub has stopped.
func (h *Hub) Remove(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Publish sends data to the global topic and to any extra topics given.
func (h *Hub) Publish(data []byte, topics ...string) {
	msg := topicMessage{topics: append([]string{GlobalTopic}, topics...), data: data}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// SendTo queues data for one client.
func (h *Hub) SendTo(client *Client, data []byte) {
	select {
	case h.direct <- directMessage{client: client, data: data}:
	case <-h.done:
	}
}

// deliver drops clients whose buffer is full instead of blocking the hub.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		log.Warn().Str("topic", client.Topic).Msg("Dropping slow websocket client")
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	h.removeSubscription(client)
	close(client.Send)
}

func (h *Hub) addSubscription(client *Client, topic string) {
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]bool)
	}
	h.subscriptions[topic][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	subs, ok := h.subscriptions[client.Topic]
	if !ok {
		return
	}
	delete(subs, client)
	if len(subs) == 0 {
		delete(h.subscriptions, client.Topic)
	}
}
