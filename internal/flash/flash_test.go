package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetAndTake_RoundTrip(t *testing.T) {
	cfg := Config{}

	// Setでフラッシュを設定
	setRec := httptest.NewRecorder()
	Set(setRec, cfg, CategorySuccess, "ログインしました。")

	cookies := setRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("len(cookies) = %d, want 1", len(cookies))
	}

	// 次のリクエストでTakeが読み取る
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])
	takeRec := httptest.NewRecorder()

	f := Take(takeRec, req, cfg)
	if f == nil {
		t.Fatal("expected flash message")
	}
	if f.Category != CategorySuccess {
		t.Errorf("Category = %q, want %q", f.Category, CategorySuccess)
	}
	if f.Message != "ログインしました。" {
		t.Errorf("Message = %q, want %q", f.Message, "ログインしました。")
	}
}

// Takeが読み取りと同時にCookieを破棄することを検証（1回限りの通知）
func TestTake_ClearsCookie(t *testing.T) {
	cfg := Config{}

	setRec := httptest.NewRecorder()
	Set(setRec, cfg, CategoryError, "メモが見つかりません。")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(setRec.Result().Cookies()[0])
	takeRec := httptest.NewRecorder()

	Take(takeRec, req, cfg)

	var cleared bool
	for _, c := range takeRec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Take should expire the flash cookie")
	}
}

func TestTake_NoCookie_ReturnsNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	if f := Take(rec, req, Config{}); f != nil {
		t.Errorf("expected nil, got %+v", f)
	}
}

func TestTake_MalformedCookie_ReturnsNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "not-base64!!"})
	rec := httptest.NewRecorder()

	if f := Take(rec, req, Config{}); f != nil {
		t.Errorf("expected nil for malformed cookie, got %+v", f)
	}
}

func TestSet_CookieIsHTTPOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, Config{CookieSecure: true}, CategorySuccess, "ok")

	cookie := rec.Result().Cookies()[0]
	if !cookie.HttpOnly {
		t.Error("flash cookie should be HttpOnly")
	}
	if !cookie.Secure {
		t.Error("flash cookie should honor CookieSecure")
	}
}
