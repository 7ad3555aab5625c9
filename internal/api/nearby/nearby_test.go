package nearby

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type MockPlaceSearcher struct {
	mock.Mock
}

func (m *MockPlaceSearcher) Search(ctx context.Context, q types.NearbyQuery) ([]types.NearbyPlace, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.NearbyPlace), args.Error(1)
}

func TestNormalizeRadius(t *testing.T) {
	assert.Equal(t, "500m", normalizeRadius("500", "200m"))
	assert.Equal(t, "2km", normalizeRadius("2km", "200m"))
	assert.Equal(t, "200m", normalizeRadius("", "200m"))
	assert.Equal(t, "", normalizeRadius("", ""))
}

func TestLongdoClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "20", q.Get("limit"))
		switch {
		case q.Get("keyword") == "10200":
			assert.Empty(t, q.Get("lat"))
			_, _ = w.Write([]byte(`{"data":[]}`))
		case q.Get("lat") == "13.7":
			assert.Equal(t, "100.5", q.Get("lon"))
			assert.Equal(t, "200m", q.Get("span"))
			_, _ = w.Write([]byte(`{"data":[{"id":"A1","name":"Wat Arun","lat":13.74,"lon":100.49,"tag":["temple"],"verified":true}]}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`invalid key`))
		}
	}))
	defer srv.Close()

	client := NewLongdoClient(config.PlaceSearchConfig{Endpoint: srv.URL, APIKey: "test-key", Timeout: time.Second}, slog.Default())
	lat, lon := 13.7, 100.5

	places, err := client.Search(context.Background(), types.NearbyQuery{Latitude: &lat, Longitude: &lon, Radius: "200m"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Wat Arun", places[0].Name)
	assert.Equal(t, []string{"temple"}, places[0].Tag)
	assert.True(t, places[0].Verified)

	places, err = client.Search(context.Background(), types.NearbyQuery{Postcode: "10200"})
	require.NoError(t, err)
	assert.Empty(t, places)

	other := 1.0
	_, err = client.Search(context.Background(), types.NearbyQuery{Latitude: &other, Longitude: &other})
	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestHandlerImpl_SearchNearby(t *testing.T) {
	tests := []struct {
		name  string
		query string
		setup func(m *MockPlaceSearcher)
		want  int
	}{
		{
			name:  "by coordinates",
			query: "?latitude=13.7&longitude=100.5&radius=500",
			setup: func(m *MockPlaceSearcher) {
				m.On("Search", mock.Anything, mock.MatchedBy(func(q types.NearbyQuery) bool {
					return *q.Latitude == 13.7 && q.Radius == "500m"
				})).Return([]types.NearbyPlace{{ID: "A1"}}, nil)
			},
			want: http.StatusOK,
		},
		{
			name:  "by postcode",
			query: "?postcode=10200",
			setup: func(m *MockPlaceSearcher) {
				m.On("Search", mock.Anything, mock.MatchedBy(func(q types.NearbyQuery) bool {
					return q.Postcode == "10200" && q.Radius == "200m"
				})).Return([]types.NearbyPlace{}, nil)
			},
			want: http.StatusOK,
		},
		{name: "nothing to search around", query: "", setup: func(*MockPlaceSearcher) {}, want: http.StatusBadRequest},
		{name: "bad latitude", query: "?latitude=north&longitude=1", setup: func(*MockPlaceSearcher) {}, want: http.StatusBadRequest},
		{
			name:  "upstream failure",
			query: "?postcode=10200",
			setup: func(m *MockPlaceSearcher) {
				m.On("Search", mock.Anything, mock.Anything).Return(nil, types.ErrUpstream)
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			searcher := new(MockPlaceSearcher)
			tc.setup(searcher)
			h := NewHandlerImpl(NewServiceImpl(searcher, "200m", slog.Default()), slog.Default())

			rr := httptest.NewRecorder()
			h.SearchNearby(rr, httptest.NewRequest(http.MethodGet, "/search_nearby"+tc.query, nil))

			assert.Equal(t, tc.want, rr.Code)
		})
	}
}
