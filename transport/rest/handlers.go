package rest

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/gridfill-backend/internal/apperror"
	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
	"github.com/rocketscienceinc/gridfill-backend/internal/pkg"
)

const sessionCookieName = "session_id"

type gameManager interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (entity.Game, error)
	SelectCell(ctx context.Context, sessionID string, row, col int) (entity.Game, error)
	FinishMove(ctx context.Context, sessionID string) (entity.Game, error)
	ComputerMove(ctx context.Context, sessionID string) (entity.Game, error)
	RestartGame(ctx context.Context, sessionID string) (entity.Game, error)
	EndSession(ctx context.Context, sessionID string) error
}

type gameHandlers struct {
	logger *slog.Logger
	game   gameManager
	tpl    *template.Template

	sessionTTL time.Duration
}

func (that *gameHandlers) index(w http.ResponseWriter, r *http.Request) {
	sessionID := that.ensureSession(w, r)

	game, err := that.game.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		that.fail(w, "index", err)
		return
	}

	page, err := renderTemplate(that.tpl, pageData{View: game.View()})
	if err != nil {
		that.fail(w, "index", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (that *gameHandlers) state(w http.ResponseWriter, r *http.Request) {
	sessionID := that.ensureSession(w, r)

	game, err := that.game.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		that.fail(w, "state", err)
		return
	}

	that.writeJSON(w, game)
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, game entity.Game) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(game.View()); err != nil {
		that.logger.Error("failed to encode state", "error", err)
	}
}

func (that *gameHandlers) selectCell(w http.ResponseWriter, r *http.Request) {
	row, errRow := strconv.Atoi(chi.URLParam(r, "row"))
	col, errCol := strconv.Atoi(chi.URLParam(r, "col"))
	if errRow != nil || errCol != nil {
		http.Error(w, "Invalid cell", http.StatusBadRequest)
		return
	}

	sessionID := that.ensureSession(w, r)

	game, err := that.game.SelectCell(r.Context(), sessionID, row, col)
	if err != nil {
		that.fail(w, "selectCell", err)
		return
	}

	that.respond(w, r, game)
}

func (that *gameHandlers) finishMove(w http.ResponseWriter, r *http.Request) {
	that.transition(w, r, "finishMove", that.game.FinishMove)
}

func (that *gameHandlers) computerMove(w http.ResponseWriter, r *http.Request) {
	that.transition(w, r, "computerMove", that.game.ComputerMove)
}

func (that *gameHandlers) restartGame(w http.ResponseWriter, r *http.Request) {
	that.transition(w, r, "restartGame", that.game.RestartGame)
}

// endSession - forgets the caller's game and expires the cookie; the next visit starts over.
func (that *gameHandlers) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && pkg.IsValidSessionID(cookie.Value) {
		if err = that.game.EndSession(r.Context(), cookie.Value); err != nil {
			that.fail(w, "endSession", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if r.Header.Get("Accept") == "application/json" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *gameHandlers) transition(
	w http.ResponseWriter,
	r *http.Request,
	method string,
	apply func(ctx context.Context, sessionID string) (entity.Game, error),
) {
	sessionID := that.ensureSession(w, r)

	game, err := apply(r.Context(), sessionID)
	if err != nil {
		that.fail(w, method, err)
		return
	}

	that.respond(w, r, game)
}

// respond - JSON clients get the new state, browsers are sent back to the board.
func (that *gameHandlers) respond(w http.ResponseWriter, r *http.Request, game entity.Game) {
	if r.Header.Get("Accept") == "application/json" {
		that.writeJSON(w, game)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *gameHandlers) fail(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		http.Error(w, "Cell is out of bounds", http.StatusBadRequest)
	case errors.Is(err, apperror.ErrSessionRequired):
		http.Error(w, "Session required", http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ensureSession - returns the caller's session id, issuing a fresh cookie when it is missing or unknown.
func (that *gameHandlers) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && pkg.IsValidSessionID(cookie.Value) {
		return cookie.Value
	}

	sessionID := pkg.GenerateNewSessionID()

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if that.sessionTTL > 0 {
		cookie.Expires = time.Now().Add(that.sessionTTL)
	}
	http.SetCookie(w, cookie)

	return sessionID
}
