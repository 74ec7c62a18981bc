package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/pkg/response"
)

// Channel describes a messaging integration shown on the communication page.
// None of them is wired yet; the page lists what is coming.
type Channel struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

var channels = []Channel{
	{Name: "twitter", Label: "Twitter"},
	{Name: "mail", Label: "Email"},
	{Name: "whatsapp", Label: "WhatsApp"},
	{Name: "instagram", Label: "Instagram"},
}

// CommunicationHandler serves the communication page data.
type CommunicationHandler struct{}

// NewCommunicationHandler wires a CommunicationHandler.
func NewCommunicationHandler() *CommunicationHandler {
	return &CommunicationHandler{}
}

// Channels lists the planned messaging integrations.
func (h *CommunicationHandler) Channels(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"message":  "Bientôt disponible",
		"channels": channels,
	})
}
