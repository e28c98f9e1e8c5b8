package websockets

// typedMessage targets every client of one type.
type typedMessage struct {
	clientType ClientType
	payload    []byte
}

type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte

	typedBroadcast chan typedMessage

	typeChannels map[ClientType]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		broadcast:      make(chan []byte),
		typedBroadcast: make(chan typedMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		typeChannels:   make(map[ClientType]map[*Client]bool),
	}
}

// BroadcastToType delivers a message only to clients of one type, e.g.
// low-stock alerts to admin dashboards.
func (h *Hub) BroadcastToType(clientType ClientType, message []byte) {
	h.typedBroadcast <- typedMessage{clientType: clientType, payload: message}
}

// BroadcastMessage delivers a message to every connected client. Slow
// clients are dropped rather than blocking delivery.
func (h *Hub) BroadcastMessage(message []byte) {
	h.broadcast <- message
}

// Run owns the client maps. Registration and every delivery path funnel
// through this goroutine, so the maps are never touched concurrently.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if _, ok := h.typeChannels[client.clientType]; !ok {
				h.typeChannels[client.clientType] = make(map[*Client]bool)
			}
			h.typeChannels[client.clientType][client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.dropClient(client)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.dropClient(client)
				}
			}

		case msg := <-h.typedBroadcast:
			for client := range h.typeChannels[msg.clientType] {
				select {
				case client.send <- msg.payload:
				default:
					h.dropClient(client)
				}
			}
		}
	}
}

// dropClient closes the send channel and removes the client from both maps.
// Must only be called from Run.
func (h *Hub) dropClient(client *Client) {
	close(client.send)
	delete(h.clients, client)
	delete(h.typeChannels[client.clientType], client)
}
