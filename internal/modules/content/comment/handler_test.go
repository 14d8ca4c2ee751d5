package comment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// fakeStore knows a fixed set of post ids and records every created document.
type fakeStore struct {
	mu       sync.Mutex
	postIDs  map[string]bool
	created  []map[string]any
	writeErr error
	fetchErr error
}

func (f *fakeStore) Fetch(ctx context.Context, query string, params map[string]string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return f.fetchErr
	}
	var stub *models.PostStub
	if id := params["id"]; f.postIDs[id] {
		stub = &models.PostStub{ID: id}
	}
	raw, err := json.Marshal(stub)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeStore) Create(ctx context.Context, doc map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return "", f.writeErr
	}
	f.created = append(f.created, doc)
	return doc["_id"].(string), nil
}

func (f *fakeStore) writes() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.created...)
}

func setupRouter(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/createComment", NewHandler(NewService(store), nil).Create)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/createComment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/createComment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	msg, _ := resp["message"].(string)
	return msg
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := post(r, `{"_id":"post-1","name":"Ann","email":"a@x.com","comment":"nice!"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment Submitted!", message(t, w))

	writes := store.writes()
	require.Len(t, writes, 1, "exactly one write on the success path")
	doc := writes[0]
	assert.Equal(t, "comment", doc["_type"])
	assert.Equal(t, "Ann", doc["name"])
	assert.Equal(t, "a@x.com", doc["email"])
	assert.Equal(t, "nice!", doc["comment"])
	assert.Equal(t, false, doc["approved"])

	ref := doc["post"].(map[string]any)
	assert.Equal(t, "reference", ref["_type"])
	assert.Equal(t, "post-1", ref["_ref"])
}

func TestSubmitAcceptsFormEncodedBody(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := postForm(r, url.Values{
		"_id":     {"post-1"},
		"name":    {"Ann"},
		"email":   {"a@x.com"},
		"comment": {"nice!"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment Submitted!", message(t, w))

	writes := store.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "Ann", writes[0]["name"])
	assert.Equal(t, "nice!", writes[0]["comment"])
	assert.Equal(t, false, writes[0]["approved"])
}

func TestSubmitFormMissingFields(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := postForm(r, url.Values{"_id": {"post-1"}, "name": {"Ann"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", message(t, w))
	assert.Empty(t, store.writes())
}

func TestSubmitIgnoresInjectedApprovedFlag(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := post(r, `{"_id":"post-1","name":"Ann","email":"a@x.com","comment":"nice!","approved":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	writes := store.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, false, writes[0]["approved"], "approved is forced false server-side")
}

func TestSubmitMissingFields(t *testing.T) {
	cases := []string{
		`{"name":"Ann","email":"a@x.com","comment":"hi"}`,
		`{"_id":"post-1","email":"a@x.com","comment":"hi"}`,
		`{"_id":"post-1","name":"Ann","comment":"hi"}`,
		`{"_id":"post-1","name":"Ann","email":"a@x.com"}`,
		`{"_id":"  ","name":"Ann","email":"a@x.com","comment":"hi"}`,
		`{}`,
	}
	for _, body := range cases {
		store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
		r := setupRouter(t, store)

		w := post(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Equal(t, "Missing required fields", message(t, w))
		assert.Empty(t, store.writes(), "no write on a validation failure")
	}
}

func TestSubmitMalformedPayload(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := post(r, `{"_id": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", message(t, w))
	assert.Empty(t, store.writes())
}

func TestSubmitUnknownPost(t *testing.T) {
	store := &fakeStore{postIDs: map[string]bool{"post-1": true}}
	r := setupRouter(t, store)

	w := post(r, `{"_id":"missing-id","name":"Ann","email":"a@x.com","comment":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", message(t, w))
	assert.Empty(t, store.writes(), "no write when the post does not exist")
}

func TestSubmitStoreWriteFailure(t *testing.T) {
	store := &fakeStore{
		postIDs:  map[string]bool{"post-1": true},
		writeErr: errors.New("insufficient permissions"),
	}
	r := setupRouter(t, store)

	w := post(r, `{"_id":"post-1","name":"Ann","email":"a@x.com","comment":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Could not submit comment", message(t, w))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "insufficient permissions")
}

func TestSubmitExistenceCheckFailure(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("store unreachable")}
	r := setupRouter(t, store)

	w := post(r, `{"_id":"post-1","name":"Ann","email":"a@x.com","comment":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Could not submit comment", message(t, w))
	assert.Empty(t, store.writes())
}
