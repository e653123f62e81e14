package entity

import "testing"

func TestSourceValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr bool
	}{
		{
			name:    "valid feed source",
			source:  Source{Name: "北区", Endpoint: "https://www.city.kita.tokyo.jp/rss.xml", Kind: SourceKindFeed},
			wantErr: false,
		},
		{
			name:    "valid page source",
			source:  Source{Name: "港区", Endpoint: "https://www.city.minato.tokyo.jp/news/", Kind: SourceKindPage},
			wantErr: false,
		},
		{
			name:    "unknown kind is allowed",
			source:  Source{Name: "中央区", Endpoint: "https://example.jp/whatsnew.html", Kind: SourceKindUnknown},
			wantErr: false,
		},
		{
			name:    "empty name",
			source:  Source{Name: "  ", Endpoint: "https://example.jp/", Kind: SourceKindFeed},
			wantErr: true,
		},
		{
			name:    "empty endpoint",
			source:  Source{Name: "北区", Endpoint: "", Kind: SourceKindFeed},
			wantErr: true,
		},
		{
			name:    "non-http endpoint",
			source:  Source{Name: "北区", Endpoint: "ftp://example.jp/news", Kind: SourceKindFeed},
			wantErr: true,
		},
		{
			name:    "invalid kind",
			source:  Source{Name: "北区", Endpoint: "https://example.jp/", Kind: "rss"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
