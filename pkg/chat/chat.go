package chat

type Conversation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"`
	UnreadCount int    `json:"unreadCount"`
	Avatar      string `json:"avatar"`
	Phone       string `json:"phone"`
}

type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	IsMe      bool   `json:"isMe"`
	Status    string `json:"status,omitempty"`
}

const autoReplyText = "Thanks for reaching out! One of our consultants will review your message and get back to you shortly. Anything else I can help with?"

func seedConversations() []Conversation {
	return []Conversation{
		{ID: "1", Name: "João Silva", LastMessage: "I'd like to know more about your services", Time: "10:30", UnreadCount: 2, Avatar: "JS", Phone: "+55 11 99999-0001"},
		{ID: "2", Name: "Maria Santos", LastMessage: "Thanks for the information!", Time: "09:45", UnreadCount: 0, Avatar: "MS", Phone: "+55 21 98888-0002"},
		{ID: "3", Name: "Pedro Costa", LastMessage: "What are your opening hours?", Time: "Yesterday", UnreadCount: 1, Avatar: "PC", Phone: "+55 31 97777-0003"},
		{ID: "4", Name: "Ana Oliveira", LastMessage: "Perfect, I'll wait for your reply.", Time: "Yesterday", UnreadCount: 0, Avatar: "AO", Phone: "+55 11 96666-0004"},
	}
}

func seedMessages() map[string][]Message {
	return map[string][]Message{
		"1": {
			{ID: "m1", Sender: "Bot", Text: "Hi! How can I help you today?", Timestamp: "10:25"},
			{ID: "m2", Sender: "João Silva", Text: "Hello, I'd like to know more about the cleaning services.", Timestamp: "10:28", IsMe: true, Status: "read"},
			{ID: "m3", Sender: "Bot", Text: "Of course! We offer monthly and one-off plans. What do you need?", Timestamp: "10:28"},
			{ID: "m4", Sender: "João Silva", Text: "I'd like to hear about the residential services.", Timestamp: "10:30", IsMe: true, Status: "delivered"},
		},
	}
}
