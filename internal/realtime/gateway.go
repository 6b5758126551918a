package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/services-marketplace/internal/config"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS já é tratado no middleware HTTP; a autenticação do
		// handshake é o que fecha a porta aqui.
		return true
	},
}

// Gateway autentica conexões WebSocket e as registra no registry.
// Sem credencial válida não há registro (fail closed).
type Gateway struct {
	registry Registry
	cfg      *config.Config
}

func NewGateway(registry Registry, cfg *config.Config) *Gateway {
	return &Gateway{registry: registry, cfg: cfg}
}

func (g *Gateway) Handle(c *gin.Context) {
	token := credentialFrom(c)
	if token == "" {
		httperr.Unauthorized(c, "missing_credential", "Credencial ausente.")
		return
	}

	ident, err := middleware.ParseToken(g.cfg, token)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Credencial inválida.")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade já respondeu ao cliente
		log.Println("realtime: upgrade failed:", err)
		return
	}

	client := NewClient(g.registry, conn, ident.UserID)
	client.Run()
}

// credentialFrom aceita token explícito na query, header Bearer ou
// cookie de sessão, nessa ordem.
func credentialFrom(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
