package app

import (
	"github.com/gorilla/mux"
	"github.com/opsdesk/opsdesk/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Auth and profile
	r.HandleFunc("/api/auth/signup", deps.UserHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", deps.UserHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/auth/signout", deps.UserHandler.SignOut).Methods("POST")
	r.HandleFunc("/api/auth/session", deps.UserHandler.Session).Methods("GET")
	r.HandleFunc("/api/user/profile", deps.UserHandler.UpdateProfile).Methods("PUT")

	// Calendar
	r.HandleFunc("/api/calendar/events", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/events", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/events/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/events/{eventId}/completed", deps.CalendarHandler.SetCompleted).Methods("PUT")
	r.HandleFunc("/api/calendar/events/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Notifications
	r.HandleFunc("/api/notifications", deps.NotificationHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/notifications/{notificationId}/viewed", deps.NotificationHandler.MarkViewed).Methods("PUT")

	// Finance
	r.HandleFunc("/api/finance/transactions", deps.FinanceHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/finance/transactions", deps.FinanceHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/finance/transactions/{transactionId}", deps.FinanceHandler.DeleteTransaction).Methods("DELETE")
	r.HandleFunc("/api/finance/summary", deps.FinanceHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/finance/dashboard", deps.FinanceHandler.GetDashboard).Methods("GET")

	// Clients
	r.HandleFunc("/api/clients", deps.ClientHandler.GetClients).Methods("GET")
	r.HandleFunc("/api/clients", deps.ClientHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.DeleteClient).Methods("DELETE")
	r.HandleFunc("/api/clients/{clientId}/stats", deps.ClientHandler.GetClientStats).Methods("GET")

	// Sales catalog and quotes
	r.HandleFunc("/api/sales/services", deps.SalesHandler.GetServices).Methods("GET")
	r.HandleFunc("/api/sales/services", deps.SalesHandler.CreateService).Methods("POST")
	r.HandleFunc("/api/sales/quotes", deps.SalesHandler.GetQuotes).Methods("GET")
	r.HandleFunc("/api/sales/quotes", deps.SalesHandler.SaveQuote).Methods("POST")
	r.HandleFunc("/api/sales/quotes/{quoteId}/status", deps.SalesHandler.UpdateQuoteStatus).Methods("PUT")
	r.HandleFunc("/api/sales/draft", deps.SalesHandler.GetDraft).Methods("GET")
	r.HandleFunc("/api/sales/draft/items", deps.SalesHandler.AddDraftItem).Methods("POST")
	r.HandleFunc("/api/sales/draft/items/{index}", deps.SalesHandler.RemoveDraftItem).Methods("DELETE")
	r.HandleFunc("/api/sales/draft/discount", deps.SalesHandler.SetDraftDiscount).Methods("PUT")
	r.HandleFunc("/api/sales/draft/client", deps.SalesHandler.SetDraftClient).Methods("PUT")

	// Expense structure
	r.HandleFunc("/api/expenses", deps.ExpensesHandler.GetItems).Methods("GET")
	r.HandleFunc("/api/expenses", deps.ExpensesHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/expenses/totals", deps.ExpensesHandler.GetTotals).Methods("GET")
	r.HandleFunc("/api/expenses/{itemId}", deps.ExpensesHandler.UpdateItem).Methods("PUT")
	r.HandleFunc("/api/expenses/{itemId}", deps.ExpensesHandler.DeleteItem).Methods("DELETE")

	// Chat inbox
	r.HandleFunc("/api/chat/conversations", deps.ChatHandler.GetConversations).Methods("GET")
	r.HandleFunc("/api/chat/conversations/{conversationId}/messages", deps.ChatHandler.GetMessages).Methods("GET")
	r.HandleFunc("/api/chat/conversations/{conversationId}/messages", deps.ChatHandler.SendMessage).Methods("POST")

	// Messaging bridge
	r.HandleFunc("/api/bridge/channel", deps.BridgeHandler.Channel).Methods("GET")
	r.HandleFunc("/api/bridge/status", deps.BridgeHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/bridge/connect", deps.BridgeHandler.Connect).Methods("POST")
	r.HandleFunc("/api/bridge/disconnect", deps.BridgeHandler.Disconnect).Methods("POST")

	// Preferences
	r.HandleFunc("/api/preferences", deps.PrefsHandler.GetPreferences).Methods("GET")
	r.HandleFunc("/api/preferences/theme", deps.PrefsHandler.UpdateTheme).Methods("PUT")
}
