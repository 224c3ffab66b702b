package service

import (
	"github.com/mbagrov/chatshell/internal/models"
)

// NavigationController owns the current-page state machine. Logout is a
// virtual target routed through the AuthManager; every other target simply
// becomes the current page, leaving the rest of the context untouched.
type NavigationController struct {
	auth *AuthManager
}

// NewNavigationController constructs a controller that routes the Logout
// action through the given AuthManager.
func NewNavigationController(auth *AuthManager) *NavigationController {
	return &NavigationController{auth: auth}
}

// Navigate applies one page-selection request. Unauthenticated contexts are
// pinned to the Login page regardless of target; unknown targets leave the
// context unchanged.
func (n *NavigationController) Navigate(sctx models.SessionContext, target models.PageID) models.SessionContext {
	if !sctx.Authenticated {
		sctx.CurrentPage = models.PageLogin
		return sctx
	}
	if target == models.PageLogout {
		return n.auth.Logout(sctx)
	}
	if !target.Valid() || target == models.PageLogin {
		return sctx
	}
	sctx.CurrentPage = target
	return sctx
}
