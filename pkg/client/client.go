// Package client is a small Go client for the SkillBoard REST API. It
// unwraps the response envelope and reports failures as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/report"
	"github.com/MohamedX1935/SkillBoard/internal/users"
)

// APIError is a non-2xx answer. Message is the server's envelope message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("skillboard: %d %s", e.Status, e.Message)
}

// Session is what login returns.
type Session struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to one API base URL. It is safe for concurrent use.
type Client struct {
	base string
	http *http.Client

	mu      sync.RWMutex
	token   string
	refresh string
}

// New returns a client for base (e.g. "http://localhost:5000"). A nil hc
// uses a client with a 30s timeout.
func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context, method, path string, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	var env envelope
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(b, &env); err != nil || env.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: env.Message}
}

// do sends in (if any) and decodes the envelope data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	resp, err := c.request(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// Login authenticates and keeps the returned tokens for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &s); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token, c.refresh = s.Token, s.RefreshToken
	c.mu.Unlock()
	return &s, nil
}

// Refresh exchanges the stored refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	rt := c.refresh
	c.mu.RUnlock()
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": rt}, &s); err != nil {
		return err
	}
	c.mu.Lock()
	c.token, c.refresh = s.Token, s.RefreshToken
	c.mu.Unlock()
	return nil
}

// Logout revokes the current tokens and forgets them.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	rt := c.refresh
	c.mu.RUnlock()
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{"refreshToken": rt}, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.token, c.refresh = "", ""
	c.mu.Unlock()
	return nil
}

// Register creates an account (Admin only).
func (c *Client) Register(ctx context.Context, in models.NewUser) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers filters by search text and role; empty values are ignored.
func (c *Client) ListUsers(ctx context.Context, search string, role models.Role) ([]models.User, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if role != "" {
		q.Set("role", string(role))
	}
	var out []models.User
	if err := c.do(ctx, http.MethodGet, withQuery("/api/users", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), p, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Skills(ctx context.Context, userID string) (*users.UserSkills, error) {
	var out users.UserSkills
	q := url.Values{"userId": {userID}}
	if err := c.do(ctx, http.MethodGet, withQuery("/api/skills", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllSkills(ctx context.Context) ([]users.UserSkills, error) {
	var out []users.UserSkills
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddSkill(ctx context.Context, userID string, in models.NewSkill) (*models.Skill, error) {
	var s models.Skill
	if err := c.do(ctx, http.MethodPost, "/api/skills/"+url.PathEscape(userID), in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSkill(ctx context.Context, userID, skillID string, p models.SkillPatch) (*models.Skill, error) {
	var s models.Skill
	if err := c.do(ctx, http.MethodPut, "/api/skills/"+url.PathEscape(userID)+"/"+url.PathEscape(skillID), p, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteSkill(ctx context.Context, userID, skillID string) error {
	return c.do(ctx, http.MethodDelete, "/api/skills/"+url.PathEscape(userID)+"/"+url.PathEscape(skillID), nil, nil)
}

func (c *Client) Trainings(ctx context.Context, userID string, status models.TrainingStatus) (*users.UserTrainings, error) {
	q := url.Values{"userId": {userID}}
	if status != "" {
		q.Set("status", string(status))
	}
	var out users.UserTrainings
	if err := c.do(ctx, http.MethodGet, withQuery("/api/trainings", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllTrainings(ctx context.Context, status models.TrainingStatus) ([]models.TrainingEntry, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []models.TrainingEntry
	if err := c.do(ctx, http.MethodGet, withQuery("/api/trainings", q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddTraining(ctx context.Context, userID string, in models.NewTraining) (*models.Training, error) {
	var t models.Training
	if err := c.do(ctx, http.MethodPost, "/api/trainings/"+url.PathEscape(userID), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTraining(ctx context.Context, userID, trainingID string, p models.TrainingPatch) (*models.Training, error) {
	var t models.Training
	if err := c.do(ctx, http.MethodPut, "/api/trainings/"+url.PathEscape(userID)+"/"+url.PathEscape(trainingID), p, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTraining(ctx context.Context, userID, trainingID string) error {
	return c.do(ctx, http.MethodDelete, "/api/trainings/"+url.PathEscape(userID)+"/"+url.PathEscape(trainingID), nil, nil)
}

func (c *Client) Metrics(ctx context.Context) (*report.Metrics, error) {
	var m report.Metrics
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/metrics", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Report streams the PDF report into w.
func (c *Client) Report(ctx context.Context, w io.Writer) (int64, error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/dashboard/report", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, decodeError(resp)
	}
	return io.Copy(w, resp.Body)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
