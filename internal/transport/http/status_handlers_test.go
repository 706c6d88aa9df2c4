package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/hackchat-bot/internal/bot"
	"github.com/vovakirdan/hackchat-bot/internal/core"
)

type stubSession struct {
	self    *core.Member
	members []core.Member
}

func (s *stubSession) Channel() string { return "lobby" }
func (s *stubSession) Connected() bool { return true }
func (s *stubSession) Members() []core.Member {
	return s.members
}

func (s *stubSession) Self() (core.Member, bool) {
	if s.self == nil {
		return core.Member{}, false
	}
	return *s.self, true
}

func (s *stubSession) Member(id int64) (core.Member, error) {
	for _, m := range s.members {
		if m.ID == id {
			return m, nil
		}
	}
	return core.Member{}, fmt.Errorf("%w: userid %d", core.ErrUnknownMember, id)
}

func (s *stubSession) On(core.EventKind, core.Handler)    {}
func (s *stubSession) Send(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	self := core.Member{Nick: "BlueBot", ID: 2}
	session := &stubSession{
		self:    &self,
		members: []core.Member{{Nick: "alice", ID: 1}, self},
	}

	b, err := bot.New("!", session, nil)
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	if _, err := b.Register("encode", "encode a string in base64",
		[]bot.Arg{{Name: "string", Description: "the string to encode", Required: true}},
		func(context.Context, bot.Args) error { return nil },
	); err != nil {
		t.Fatalf("register: %v", err)
	}

	disabledLogger := zerolog.Nop()
	return NewRouter(session, b, &disabledLogger)
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	resp := serve(t, newTestRouter(t), "/health")
	if resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", resp.Code, resp.Body.String())
	}
}

func TestMembersEndpoint(t *testing.T) {
	resp := serve(t, newTestRouter(t), "/api/members")
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var body MembersResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Channel != "lobby" || !body.Connected || len(body.Members) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Self == nil || body.Self.ID != 2 || body.Members[0].Nick != "alice" {
		t.Fatalf("unexpected roster: %+v", body)
	}
}

func TestCommandsEndpoint(t *testing.T) {
	resp := serve(t, newTestRouter(t), "/api/commands")
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var cmds []CommandDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &cmds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cmds) != 2 || cmds[0].Name != "help" || cmds[1].Name != "encode" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
	if cmds[1].Usage != "!encode <string>" || !cmds[1].Args[0].Required {
		t.Fatalf("unexpected encode description: %+v", cmds[1])
	}
}

func TestCommandEndpointNotFound(t *testing.T) {
	h := newTestRouter(t)

	if resp := serve(t, h, "/api/commands/help"); resp.Code != http.StatusOK {
		t.Fatalf("unexpected status for help: %d", resp.Code)
	}
	if resp := serve(t, h, "/api/commands/ghost"); resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown command: %d", resp.Code)
	}
}

func TestMemberEndpoint(t *testing.T) {
	h := newTestRouter(t)

	resp := serve(t, h, "/api/members/1")
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	var m MemberDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ID != 1 || m.Nick != "alice" {
		t.Fatalf("unexpected member: %+v", m)
	}

	if resp := serve(t, h, "/api/members/99"); resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown member: %d", resp.Code)
	}
	if resp := serve(t, h, "/api/members/abc"); resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for malformed id: %d", resp.Code)
	}
}
