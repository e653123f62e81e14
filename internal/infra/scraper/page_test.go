package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func servePage(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPageFetcherListingWithContextDates(t *testing.T) {
	listing := `<html><body>
<nav><a href="/global-menu.html">グローバルメニュー</a></nav>
<main>
  <ul>
    <li>2026/1/14 <a href="/news/1.html">防災訓練のお知らせ</a></li>
    <li>令和8年1月13日 <a href="/news/2.html">住民税の申告受付</a></li>
    <li><a href="/news/3.html">日付のないお知らせ</a></li>
  </ul>
</main>
</body></html>`

	server := servePage(t, map[string]string{"/list.html": listing})
	p := NewPageFetcher(server.Client(), 0)

	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	// <main> の外のナビゲーションリンクは拾わない
	if len(items) != 3 {
		t.Fatalf("Fetch() returned %d items, want 3", len(items))
	}

	if items[0].Link != server.URL+"/news/1.html" {
		t.Errorf("items[0].Link = %q, want absolute URL", items[0].Link)
	}
	if items[0].RawPublished != "2026/1/14" {
		t.Errorf("items[0].RawPublished = %q, want %q", items[0].RawPublished, "2026/1/14")
	}
	if items[1].RawPublished != "令和8年1月13日" {
		t.Errorf("items[1].RawPublished = %q, want era date", items[1].RawPublished)
	}
	if items[2].RawPublished != "" {
		t.Errorf("items[2].RawPublished = %q, want empty", items[2].RawPublished)
	}
}

func TestPageFetcherSkipsNoiseLinks(t *testing.T) {
	listing := `<html><body><main>
<a href="#top">»</a>
<a href="/list.html">一覧</a>
<a href="mailto:info@example.jp">お問い合わせ</a>
<a href="/news/1.html">1</a>
<a href="/news/2.html">2026/1/14 通常のお知らせ</a>
<a href="/news/2.html">重複リンク(後勝ちしない)</a>
</main></body></html>`

	server := servePage(t, map[string]string{"/list.html": listing})
	p := NewPageFetcher(server.Client(), 0)

	endpoint := server.URL + "/list.html"
	items, err := p.Fetch(context.Background(), endpoint, 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	// フラグメント・自己参照・mailto・短すぎるタイトル・重複を除くと1件
	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1: %+v", len(items), items)
	}
	if items[0].Title != "2026/1/14 通常のお知らせ" {
		t.Errorf("items[0].Title = %q", items[0].Title)
	}
}

func TestPageFetcherTimeElementRecovery(t *testing.T) {
	listing := `<html><body><main>
<ul>
  <li><time datetime="2026-01-14">1月14日</time> <a href="/news/1.html">ごみ収集日程の変更</a></li>
</ul>
</main></body></html>`

	server := servePage(t, map[string]string{"/list.html": listing})
	p := NewPageFetcher(server.Client(), 0)

	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1", len(items))
	}
	// 親テキストに年なし日付があってもここでは抽出対象(1月14日)になる
	if items[0].RawPublished != "1月14日" {
		t.Errorf("RawPublished = %q, want %q", items[0].RawPublished, "1月14日")
	}
}

func TestPageFetcherMetaDateFallback(t *testing.T) {
	listing := `<html><head>
<meta property="article:published_time" content="2026-01-10T00:00:00+09:00">
<meta property="article:modified_time" content="2026-01-14T00:00:00+09:00">
</head><body><main>
<a href="/news/1.html">メタデータ頼みのお知らせ</a>
</main></body></html>`

	server := servePage(t, map[string]string{"/list.html": listing})
	p := NewPageFetcher(server.Client(), 0)

	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1", len(items))
	}
	// modified_time が published_time より優先される
	if items[0].RawPublished != "2026-01-14T00:00:00+09:00" {
		t.Errorf("RawPublished = %q, want modified_time", items[0].RawPublished)
	}
}

func TestPageFetcherDetailFetchBudget(t *testing.T) {
	listing := `<html><body><main>
<a href="/news/1.html">詳細ページにしか日付のないお知らせ</a>
<a href="/news/2.html">二件目の日付のないお知らせ</a>
</main></body></html>`
	detail := `<html><body><article>
<p>更新日:令和8年1月14日</p>
</article></body></html>`

	server := servePage(t, map[string]string{
		"/list.html":   listing,
		"/news/1.html": detail,
		"/news/2.html": detail,
	})

	// 予算1: 一件目だけ詳細ページから日付を回収する
	p := NewPageFetcher(server.Client(), 1)
	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Fetch() returned %d items, want 2", len(items))
	}
	if items[0].RawPublished != "令和8年1月14日" {
		t.Errorf("items[0].RawPublished = %q, want recovered era date", items[0].RawPublished)
	}
	if items[1].RawPublished != "" {
		t.Errorf("items[1].RawPublished = %q, want empty (budget exhausted)", items[1].RawPublished)
	}
}

func TestPageFetcherDetailFetchFailureConsumesBudget(t *testing.T) {
	listing := `<html><body><main>
<a href="/missing.html">404になるお知らせ</a>
<a href="/news/2.html">二件目のお知らせ</a>
</main></body></html>`
	detail := `<html><body><p>2026/1/14</p></body></html>`

	server := servePage(t, map[string]string{
		"/list.html":   listing,
		"/news/2.html": detail,
	})

	p := NewPageFetcher(server.Client(), 1)
	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Fetch() returned %d items, want 2", len(items))
	}
	// 失敗した詳細取得も予算を消費するので二件目は回収されない
	if items[0].RawPublished != "" {
		t.Errorf("items[0].RawPublished = %q, want empty", items[0].RawPublished)
	}
	if items[1].RawPublished != "" {
		t.Errorf("items[1].RawPublished = %q, want empty", items[1].RawPublished)
	}
}

func TestPageFetcherWholeDocumentFallback(t *testing.T) {
	// 既知のレイアウトに一致しないページは全体を走査する
	listing := `<html><body><div class="custom-layout">
<p>2026/1/14 <a href="/news/1.html">レイアウト不明のお知らせ</a></p>
</div></body></html>`

	server := servePage(t, map[string]string{"/list.html": listing})
	p := NewPageFetcher(server.Client(), 0)

	items, err := p.Fetch(context.Background(), server.URL+"/list.html", 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1", len(items))
	}
}

func TestPageFetcherListingError(t *testing.T) {
	server := servePage(t, map[string]string{})
	p := NewPageFetcher(server.Client(), 0)

	if _, err := p.Fetch(context.Background(), server.URL+"/list.html", 0); err == nil {
		t.Fatal("Fetch() expected error for 404 listing, got nil")
	}
}
