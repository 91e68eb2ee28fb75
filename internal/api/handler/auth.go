package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"hosteldesk/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// googleUserInfo is the subset of the Google userinfo payload we consume.
type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback handles the OAuth redirect: exchanges the code, checks that
// the account belongs to the institute mail domain, create-or-gets the user,
// opens a session and sets the cookie.
func (h *Handler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing authorization code"})
		return
	}

	token, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("ERROR: OAuth code exchange failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication failed"})
		return
	}

	client := h.OAuth.Client(c.Request.Context(), token)
	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		log.Printf("ERROR: Userinfo fetch failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication failed"})
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		log.Printf("ERROR: Failed to decode userinfo: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication failed"})
		return
	}

	if !h.isAllowedEmail(info.Email) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Only institute mail accounts are allowed"})
		return
	}

	user, err := h.Storage.CreateOrGetUser(info.Email, info.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user account"})
		return
	}

	cookie, err := h.Sessions.Create(c.Request.Context(), user)
	if err != nil {
		log.Printf("ERROR: Failed to create session for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
		return
	}

	c.SetCookie(config.SessionCookieName, cookie, int(config.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard.html")
}

// CheckSession reports whether the request carries a live session, mirroring
// the shape the frontend polls for.
func (h *Handler) CheckSession(c *gin.Context) {
	token, _ := c.Cookie(config.SessionCookieName)
	sess, err := h.Sessions.Get(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"user": gin.H{
			"id":    sess.UserID,
			"email": sess.Email,
			"name":  sess.Name,
		},
	})
}

// Logout destroys the session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(config.SessionCookieName)
	if err := h.Sessions.Destroy(c.Request.Context(), token); err != nil {
		log.Printf("ERROR: Failed to destroy session: %v", err)
	}
	c.SetCookie(config.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handler) isAllowedEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(h.AllowedMailDomain))
}
