package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipe-lpz/piupiuwer/internal/api"
	"github.com/felipe-lpz/piupiuwer/internal/repository/memory"
	"github.com/felipe-lpz/piupiuwer/internal/service"
)

// setupRouter wires the full stack (memory repositories, services,
// handlers) behind a chi router, the same shape cmd/server builds.
func setupRouter() chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := memory.NewUserRepository()
	piuRepo := memory.NewPiuRepository()

	guard := service.NewCascadeGuard()
	userService := service.NewUserService(userRepo, piuRepo, guard, logger)
	piuService := service.NewPiuService(piuRepo, userRepo, guard, logger)

	r := chi.NewRouter()
	r.Mount("/users", api.NewUserHandler(userService, logger).Routes())
	r.Mount("/pius", api.NewPiuHandler(piuService, logger).Routes())
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func validUserBody() map[string]any {
	return map[string]any{
		"username": "fulano",
		"email":    "fulano@example.com",
		"name":     "Fulano de Tal",
		"birth":    "1998-07-02",
		"cpf":      "12345678909",
		"phone":    "81999998888",
		"about":    "oi",
	}
}

func createUser(t *testing.T, router chi.Router) map[string]any {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/users", validUserBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestUserHandler_CreateUser(t *testing.T) {
	router := setupRouter()

	user := createUser(t, router)

	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "fulano", user["username"])
	assert.Equal(t, "123.456.789-09", user["cpf"])
	assert.Equal(t, "(81) 99999-8888", user["phone"])
}

func TestUserHandler_CreateUserMissingFields(t *testing.T) {
	router := setupRouter()

	body := validUserBody()
	delete(body, "email")

	w := doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Todos os campos são obrigatórios", decodeMessage(t, w))
}

func TestUserHandler_CreateUserInvalidCPF(t *testing.T) {
	router := setupRouter()

	body := validUserBody()
	body["cpf"] = "12345678900"

	w := doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "O CPF informado não é válido", decodeMessage(t, w))
}

func TestUserHandler_CreateUserInvalidPhone(t *testing.T) {
	router := setupRouter()

	body := validUserBody()
	body["phone"] = "819999"

	w := doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "O telefone deve estar no formato (XX) XXXXX-XXXX", decodeMessage(t, w))
}

func TestUserHandler_CreateUserMalformedBirth(t *testing.T) {
	router := setupRouter()

	body := validUserBody()
	body["birth"] = "02/07/1998"

	// A supplied but unparsable birth is its own failure, not a missing
	// field.
	w := doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Data de nascimento inválida", decodeMessage(t, w))
}

func TestUserHandler_CreateUserDuplicates(t *testing.T) {
	router := setupRouter()
	createUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/users", validUserBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Este email já está em uso", decodeMessage(t, w))

	body := validUserBody()
	body["email"] = "outro@example.com"
	w = doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Este username já está em uso", decodeMessage(t, w))

	body = validUserBody()
	body["email"] = "outro@example.com"
	body["username"] = "outro"
	body["phone"] = "11987654321"
	w = doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Este CPF já está cadastrado", decodeMessage(t, w))

	body = validUserBody()
	body["email"] = "outro@example.com"
	body["username"] = "outro"
	body["cpf"] = "111.444.777-35"
	w = doJSON(t, router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Este telefone já está cadastrado", decodeMessage(t, w))
}

func TestUserHandler_ListUsers(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createUser(t, router)

	w = doJSON(t, router, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestUserHandler_GetUser(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%s", user["id"]), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/2a9a1b52-0c51-457e-8e3e-63aaa1301fd2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado", decodeMessage(t, w))

	// A malformed id cannot name any user.
	w = doJSON(t, router, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado", decodeMessage(t, w))
}

func TestUserHandler_UpdateUser(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router)

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/users/%s", user["id"]), map[string]any{
		"about": "atualizado",
		"phone": "11987654321",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "atualizado", updated["about"])
	assert.Equal(t, "(11) 98765-4321", updated["phone"])
	assert.Equal(t, user["username"], updated["username"])
}

func TestUserHandler_UpdateUserMalformedBirth(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router)

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/users/%s", user["id"]), map[string]any{
		"birth": "ontem",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Data de nascimento inválida", decodeMessage(t, w))
}

func TestUserHandler_UpdateUserNotFound(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodPatch, "/users/2a9a1b52-0c51-457e-8e3e-63aaa1301fd2", map[string]any{
		"about": "nada",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado", decodeMessage(t, w))
}

func TestUserHandler_DeleteUser(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/users/%s", user["id"]), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/users/%s", user["id"]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado", decodeMessage(t, w))
}
