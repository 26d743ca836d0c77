package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) port.BackendClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, zap.NewNop())
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New("opaque-token")
	require.NoError(t, err)
	return sess
}

func TestListWallets(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []entity.Wallet
	}{
		{
			name: "array",
			body: `[{"id":"w1","name":"Main","address":"0xabc","type":"ETHEREUM"}]`,
			want: []entity.Wallet{{ID: "w1", Name: "Main", Address: "0xabc", Chain: "ETHEREUM"}},
		},
		{
			name: "object is coerced to empty",
			body: `{"message":"no wallets"}`,
			want: []entity.Wallet{},
		},
		{
			name: "empty body",
			body: ``,
			want: []entity.Wallet{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/wallets", r.URL.Path)
				assert.Equal(t, "Bearer opaque-token", r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := client.ListWallets(context.Background(), testSession(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBalance_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"rate limited", http.StatusInternalServerError, `{"error":"Moralis: Internal Server Error"}`, "UPSTREAM_002"},
		{"generic 500", http.StatusInternalServerError, `{"error":"boom"}`, "UPSTREAM_001"},
		{"bad gateway", http.StatusBadGateway, `oops`, "UPSTREAM_001"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, "AUTH_002"},
		{"forbidden", http.StatusForbidden, ``, "AUTH_003"},
		{"not found", http.StatusNotFound, `{"message":"Wallet not found"}`, "UPSTREAM_003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/wallets/balance/w%201", r.URL.EscapedPath())
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.GetBalance(context.Background(), testSession(t), "w 1")
			require.Error(t, err)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestGetBalance_Decodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"type":"SOLANA","address":"abc",
			"balances":[{"type":"NATIVE","symbol":"SOL","rawBalance":"1500000000","balance":1.5,"marketData":{"price":100}}],
			"nfts":[{"contractAddress":"c","tokenId":"1","floorPrice":0.5}],
			"contractAddresses":{"SOL":"So11111111111111111111111111111111111111112"}
		}`)
	})

	balance, err := client.GetBalance(context.Background(), testSession(t), "w1")
	require.NoError(t, err)
	require.Len(t, balance.Balances, 1)
	assert.Equal(t, entity.Amount("1500000000"), balance.Balances[0].RawBalance)
	assert.Equal(t, entity.Amount("1.5"), balance.Balances[0].Balance)
	assert.Equal(t, 100.0, balance.Balances[0].Price())
	require.Len(t, balance.NFTs, 1)
	assert.Equal(t, "So11111111111111111111111111111111111111112", balance.ContractAddresses["SOL"])
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Empty(t, r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"username":"alice","password":"secret"}`, string(body))
			_, _ = io.WriteString(w, `{"token":"tok","user":{"_id":"u1","username":"alice","role":"user"}}`)
		})

		result, err := client.Login(context.Background(), entity.Credentials{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "tok", result.Token)
		assert.Equal(t, "u1", result.User.ID)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Login(context.Background(), entity.Credentials{Username: "alice", Password: "bad"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials())
	})
}

func TestListBannedTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "scam coin", r.URL.Query().Get("search"))
		_, _ = io.WriteString(w, `{"tokens":[{"id":7,"address":"0xdead","symbol":"SCAM"}],"total":11,"page":2,"totalPages":2}`)
	})

	page, err := client.ListBannedTokens(context.Background(), testSession(t), entity.BannedTokenQuery{Page: 2, Limit: 100, Search: "scam coin"})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Tokens, 1)
	assert.Equal(t, 7, page.Tokens[0].ID)
}

func TestRecordHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallets/portfolio-history", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"totalValue":1234.5}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.RecordHistory(context.Background(), testSession(t), 1234.5))
}

func TestGetHistory_EmptySeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	history, err := client.GetHistory(context.Background(), testSession(t))
	require.NoError(t, err)
	assert.Empty(t, history.Labels)
	assert.NotNil(t, history.Values)
}

func TestAdminLists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users":
			_, _ = io.WriteString(w, `[{"_id":"u1","username":"root","role":"admin"}]`)
		case "/api/admin/wallets":
			_, _ = io.WriteString(w, `{"error":"unexpected"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	users, err := client.ListUsers(context.Background(), testSession(t))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())

	wallets, err := client.ListAllWallets(context.Background(), testSession(t))
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestDeadlineExceeded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListWallets(ctx, testSession(t))
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UPSTREAM_001", appErr.Code)
}
