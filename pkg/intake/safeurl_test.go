package intake

import "testing"

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"パブリックIP", "https://8.8.8.8/favicon.ico", false},

		{"GCSスキーム (gs://)", "gs://my-bucket/path/to/image.png", true},
		{"不正なスキーム", "gopher://example.com", true},
		{"ループバック", "http://127.0.0.1/admin", true},
		{"IPv6 ループバック", "http://[::1]/admin", true},
		{"プライベートIP (クラスA)", "http://10.255.255.254/metadata", true},
		{"リンクローカル", "http://169.254.169.254/latest/meta-data", true},
		{"相対パス", "/images/a.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, err := IsSafeURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsSafeURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !safe {
				t.Errorf("%s: safe URL was flagged as unsafe", tt.url)
			}
			if tt.wantErr && safe {
				t.Errorf("%s: unsafe URL was flagged as safe", tt.url)
			}
		})
	}
}
