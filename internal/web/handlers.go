package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/acrane/wrapped-so-far/internal/cache"
	"github.com/acrane/wrapped-so-far/internal/db"
	"github.com/acrane/wrapped-so-far/internal/personality"
	"github.com/acrane/wrapped-so-far/internal/spotify"
	"github.com/acrane/wrapped-so-far/internal/stats"
)

// analysisLimit is how many top artists and tracks feed the personality
// analysis and mood clustering.
const analysisLimit = 50

// maxPageLimit caps the limit query parameter for list endpoints.
const maxPageLimit = 50

// catalog is the slice of the Spotify client the handlers use.
type catalog interface {
	CurrentUser(ctx context.Context) (*spotify.Profile, error)
	TopArtists(ctx context.Context, tr spotify.TimeRange, limit int) ([]personality.Artist, error)
	TopTracks(ctx context.Context, tr spotify.TimeRange, limit int) ([]personality.Track, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]spotify.RecentTrack, error)
	AudioFeatures(ctx context.Context, trackIDs []string) ([]personality.AudioFeatures, error)
}

// Handlers contains HTTP handlers for the JSON API.
type Handlers struct {
	auth     *spotifyauth.Authenticator
	sessions SessionManager
	database *db.DB // nil disables persistence
	cache    *cache.Cache

	// catalogFor builds an authenticated catalog client for a session
	// token. Swappable in tests.
	catalogFor func(ctx context.Context, token *oauth2.Token) catalog
}

// NewHandlers creates a new Handlers instance. database may be nil, in
// which case user upserts and snapshot history are disabled.
func NewHandlers(auth *spotifyauth.Authenticator, sessions SessionManager, database *db.DB, responseCache *cache.Cache) *Handlers {
	h := &Handlers{
		auth:     auth,
		sessions: sessions,
		database: database,
		cache:    responseCache,
	}
	h.catalogFor = func(ctx context.Context, token *oauth2.Token) catalog {
		return spotify.New(spotifyapi.New(auth.Client(ctx, token)))
	}
	return h
}

// ============================================================================
// JSON Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// ============================================================================
// Session Middleware
// ============================================================================

type contextKey string

const sessionKey contextKey = "session"

// requireSession rejects requests without a valid session and stashes
// the session in the request context for downstream handlers.
func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := h.sessions.GetFromRequest(r)
		if session == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey).(*Session)
	return session
}

// ============================================================================
// Auth Handlers
// ============================================================================

// Root reports service status (GET /).
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":       "wrapped-so-far",
		"authenticated": h.sessions.GetFromRequest(r) != nil,
	})
}

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := generateOAuthState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate state")
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing state cookie")
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("spotify auth error: %s", errMsg))
		return
	}

	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to exchange token")
		return
	}

	client := h.catalogFor(r.Context(), token)
	profile, err := client.CurrentUser(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch user profile")
		return
	}

	if h.database != nil {
		user := &db.User{
			ID:          profile.ID,
			DisplayName: profile.DisplayName,
			Email:       profile.Email,
		}
		if err := h.database.Users().Upsert(r.Context(), user); err != nil {
			log.Printf("upserting user %s: %v", profile.ID, err)
		}
	}

	session, err := h.sessions.Create(r.Context(), token, profile.ID, profile.DisplayName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessions.SetCookie(w, session)

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}
	h.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ============================================================================
// Catalog Handlers
// ============================================================================

// Me returns the authenticated user's profile (GET /api/me).
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	client := h.catalogFor(r.Context(), session.Token)
	profile, err := client.CurrentUser(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch user profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// TopArtists returns the user's top artists (GET /api/top-artists).
func (h *Handlers) TopArtists(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	tr, err := spotify.ParseTimeRange(r.URL.Query().Get("time_range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("top-artists:%s:%s:%d", session.UserID, tr, limit)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	artists, err := client.TopArtists(r.Context(), tr, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch top artists")
		return
	}

	resp := map[string]any{"time_range": tr, "artists": artists}
	h.cache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// TopTracks returns the user's top tracks (GET /api/top-tracks).
func (h *Handlers) TopTracks(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	tr, err := spotify.ParseTimeRange(r.URL.Query().Get("time_range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("top-tracks:%s:%s:%d", session.UserID, tr, limit)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	tracks, err := client.TopTracks(r.Context(), tr, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch top tracks")
		return
	}

	resp := map[string]any{"time_range": tr, "tracks": tracks}
	h.cache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Recent returns the user's play history (GET /api/recent).
func (h *Handlers) Recent(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	recent, err := client.RecentlyPlayed(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch play history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": recent})
}

// Stats returns the listening statistics summary (GET /api/stats).
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	tr, err := spotify.ParseTimeRange(r.URL.Query().Get("time_range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("stats:%s:%s", session.UserID, tr)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	artists, _, features, err := fetchAnalysisInput(r.Context(), client, tr)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch listening data")
		return
	}
	recent, err := client.RecentlyPlayed(r.Context(), maxPageLimit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch play history")
		return
	}

	plays := make([]stats.Play, len(recent))
	for i, item := range recent {
		plays[i] = stats.Play{
			TrackID:    item.Track.ID,
			PlayedAt:   item.PlayedAt,
			DurationMs: item.Track.DurationMs,
		}
	}

	summary := stats.Summarize(artists, features, plays)
	resp := map[string]any{"time_range": tr, "summary": summary}
	h.cache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Personality runs the personality analysis (GET /api/personality).
func (h *Handlers) Personality(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	tr, err := spotify.ParseTimeRange(r.URL.Query().Get("time_range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("personality:%s:%s", session.UserID, tr)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	artists, tracks, features, err := fetchAnalysisInput(r.Context(), client, tr)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch listening data")
		return
	}

	scores := personality.Analyze(artists, tracks, features)
	if scores == nil {
		scores = []personality.Score{}
	}

	if h.database != nil {
		h.saveSnapshot(r.Context(), session.UserID, string(tr), scores)
	}

	resp := map[string]any{"time_range": tr, "scores": scores}
	h.cache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// saveSnapshot persists an analysis run. Failures are logged, not
// surfaced, so a database outage never breaks the endpoint.
func (h *Handlers) saveSnapshot(ctx context.Context, userID, timeRange string, scores []personality.Score) {
	snapshot := &db.Snapshot{UserID: userID, TimeRange: timeRange}
	rows := make([]db.SnapshotScore, len(scores))
	for i, score := range scores {
		rows[i] = db.SnapshotScore{
			Category:   string(score.Category),
			Percentage: score.Percentage,
			Position:   i,
		}
	}
	if err := h.database.Snapshots().Create(ctx, snapshot, rows); err != nil {
		log.Printf("saving personality snapshot for %s: %v", userID, err)
	}
}

type snapshotScoreResponse struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

type snapshotResponse struct {
	ID        string                  `json:"id"`
	TimeRange string                  `json:"time_range"`
	CreatedAt time.Time               `json:"created_at"`
	Scores    []snapshotScoreResponse `json:"scores"`
}

// PersonalityHistory returns past analysis snapshots, newest first
// (GET /api/personality/history).
func (h *Handlers) PersonalityHistory(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot history requires a database")
		return
	}
	session := sessionFrom(r.Context())

	snapshots, err := h.database.Snapshots().GetForUser(r.Context(), session.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load snapshot history")
		return
	}

	history := make([]snapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		scores, err := h.database.Snapshots().GetScores(r.Context(), snapshot.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load snapshot scores")
			return
		}
		entry := snapshotResponse{
			ID:        snapshot.ID.String(),
			TimeRange: snapshot.TimeRange,
			CreatedAt: snapshot.CreatedAt,
			Scores:    make([]snapshotScoreResponse, len(scores)),
		}
		for i, score := range scores {
			entry.Scores[i] = snapshotScoreResponse{
				Category:   score.Category,
				Percentage: score.Percentage,
			}
		}
		history = append(history, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": history})
}

// Moods clusters the user's top tracks into mood groups (GET /api/moods).
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	tr, err := spotify.ParseTimeRange(r.URL.Query().Get("time_range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("moods:%s:%s", session.UserID, tr)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	client := h.catalogFor(r.Context(), session.Token)
	tracks, err := client.TopTracks(r.Context(), tr, analysisLimit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch top tracks")
		return
	}
	features, err := client.AudioFeatures(r.Context(), trackIDs(tracks))
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch audio features")
		return
	}

	byID := make(map[string]personality.AudioFeatures, len(features))
	for _, f := range features {
		byID[f.ID] = f
	}
	moodTracks := make([]stats.MoodTrack, 0, len(tracks))
	for _, track := range tracks {
		f, ok := byID[track.ID]
		if !ok {
			continue // no feature vector for this track
		}
		moodTracks = append(moodTracks, stats.MoodTrack{Track: track, Features: f})
	}

	moods := stats.ClusterMoods(moodTracks, stats.DefaultMoodConfig())
	if moods == nil {
		moods = []stats.MoodCluster{}
	}

	resp := map[string]any{"time_range": tr, "moods": moods}
	h.cache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// Request Helpers
// ============================================================================

// fetchAnalysisInput pulls the top artists, top tracks, and the tracks'
// audio features for one time range.
func fetchAnalysisInput(ctx context.Context, client catalog, tr spotify.TimeRange) ([]personality.Artist, []personality.Track, []personality.AudioFeatures, error) {
	artists, err := client.TopArtists(ctx, tr, analysisLimit)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching top artists: %w", err)
	}
	tracks, err := client.TopTracks(ctx, tr, analysisLimit)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching top tracks: %w", err)
	}
	features, err := client.AudioFeatures(ctx, trackIDs(tracks))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching audio features: %w", err)
	}
	return artists, tracks, features, nil
}

func trackIDs(tracks []personality.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

// parseLimit reads the limit query parameter, defaulting to the
// catalog page size.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return spotify.DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxPageLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", maxPageLimit)
	}
	return n, nil
}
