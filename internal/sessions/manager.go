package sessions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/models"
)

// CookieName is the session cookie. Its value is the raw user id.
const CookieName = "session_user_id"

// Manager issues and resolves cookie sessions. There is no server-side
// session table: the cookie alone carries the identity, and every resolve
// re-checks the user still exists.
type Manager struct {
	db     *gorm.DB
	ttl    time.Duration
	secure bool
}

// NewManager builds a Manager. A non-positive ttl falls back to 30 days.
func NewManager(db *gorm.DB, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Manager{db: db, ttl: ttl, secure: secure}
}

// Create sets the session cookie for the given user id.
func (m *Manager) Create(c *gin.Context, userID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, userID, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// Destroy clears the session cookie.
func (m *Manager) Destroy(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

// UserID returns the id stored in the cookie, or "" when the cookie is
// absent or does not hold a well-formed id.
func (m *Manager) UserID(c *gin.Context) string {
	value, err := c.Cookie(CookieName)
	if err != nil || value == "" {
		return ""
	}
	if _, err := uuid.Parse(value); err != nil {
		return ""
	}
	return value
}

// CurrentUser resolves the cookie to a user record. It returns nil when
// there is no cookie, the id is malformed, or the user no longer exists.
func (m *Manager) CurrentUser(c *gin.Context) *models.PublicUser {
	id := m.UserID(c)
	if id == "" {
		return nil
	}

	var user models.User
	if err := m.db.WithContext(c.Request.Context()).First(&user, "id = ?", id).Error; err != nil {
		return nil
	}

	public := user.Public()
	return &public
}
