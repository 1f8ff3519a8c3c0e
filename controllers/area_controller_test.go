package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/controllers"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type mockAreaRepo struct{ mock.Mock }

func (m *mockAreaRepo) FindAll(ctx context.Context, activeOnly bool) ([]*models.ShippingArea, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ShippingArea), args.Error(1)
}

func (m *mockAreaRepo) FindBySlug(ctx context.Context, slug string) (*models.ShippingArea, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShippingArea), args.Error(1)
}

func (m *mockAreaRepo) Create(ctx context.Context, area *models.ShippingArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *mockAreaRepo) Update(ctx context.Context, id uuid.UUID, updates bson.M) (int64, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAreaRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func setupAreaRouter(repo repository.AreaRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := controllers.NewAreaController(services.NewAreaService(repo))

	r.GET("/areas", c.ListPublic)
	r.POST("/admin/areas", c.Create)
	r.DELETE("/admin/areas/:id", c.Delete)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func TestListPublicAreas(t *testing.T) {
	repo := new(mockAreaRepo)
	repo.On("FindAll", mock.Anything, true).Return([]*models.ShippingArea{
		{ID: uuid.New(), Slug: "downtown", Name: "Downtown", Fee: 5, Active: true},
	}, nil)
	r := setupAreaRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/areas", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var areas []models.ShippingArea
	assert.NoError(t, json.Unmarshal(resp.Data, &areas))
	assert.Len(t, areas, 1)
	assert.Equal(t, "downtown", areas[0].Slug)
}

func TestCreateArea(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(mockAreaRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		r := setupAreaRouter(repo)

		body, _ := json.Marshal(map[string]interface{}{
			"slug": "harbor", "name": "Harbor", "fee": 7.5, "delivery_days": 2,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/areas", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		repo := new(mockAreaRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateSlug)
		r := setupAreaRouter(repo)

		body, _ := json.Marshal(map[string]interface{}{
			"slug": "harbor", "name": "Harbor", "fee": 7.5, "delivery_days": 2,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/areas", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("MissingFields", func(t *testing.T) {
		r := setupAreaRouter(new(mockAreaRepo))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/areas", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteArea(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		repo := new(mockAreaRepo)
		repo.On("Delete", mock.Anything, mock.Anything).Return(int64(0), nil)
		r := setupAreaRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/admin/areas/"+uuid.NewString(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		r := setupAreaRouter(new(mockAreaRepo))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/admin/areas/not-a-uuid", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
