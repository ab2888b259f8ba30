package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newProfileTestClient(t *testing.T, handler http.HandlerFunc) *ProfileClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewProfileClient(ProfileConfig{BaseURL: srv.URL, HTTPClient: srv.Client()}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProfileClient 应成功: %v", err)
	}
	return c
}

func TestProfileClient_GetProfile(t *testing.T) {
	c := newProfileTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/profile" {
			t.Errorf("请求路径不符: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token-123" {
			t.Errorf("Authorization 头不符: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("langCode") != "lo" {
			t.Errorf("langCode 头不符: %s", r.Header.Get("langCode"))
		}
		fmt.Fprint(w, `{"result":{"serviceResult":{"code":200},"data":{"user":{"id":"u1","firstName":"Somchai","team":{"name":"Platform"}}}}}`)
	})

	user, err := c.GetProfile(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("GetProfile 应成功: %v", err)
	}
	if user.ID != "u1" || user.FirstName != "Somchai" {
		t.Errorf("用户档案不符: %+v", user)
	}
	if user.Team == nil || user.Team.Name != "Platform" {
		t.Errorf("团队信息不符: %+v", user.Team)
	}
}

func TestProfileClient_GetProfile_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"非 200 状态", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"嵌套成功码不符", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"result":{"serviceResult":{"code":500},"data":{}}}`)
		}},
		{"缺少用户数据", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"result":{"serviceResult":{"code":200},"data":{}}}`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newProfileTestClient(t, tc.handler)
			_, err := c.GetProfile(context.Background(), "token-123")
			if !errors.Is(err, ErrProfileFetchFailed) {
				t.Errorf("期望 ErrProfileFetchFailed，实际 %v", err)
			}
		})
	}
}
