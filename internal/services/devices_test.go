package services

import "testing"

func TestClassifyBrowserPriority(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		// Chrome agents advertise Safari too; Chrome must win.
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/126.0 Safari/537.36", "Chrome"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0", "Firefox"},
		{"Mozilla/5.0 (Macintosh) AppleWebKit/605.1 Version/17.0 Safari/605.1", "Safari"},
		{"SomeAgent Edge/126.0", "Edge"},
		{"curl/8.4.0", "Other"},
		{"", "Unknown"},
	}
	for _, c := range cases {
		if got := ClassifyBrowser(c.ua); got != c.want {
			t.Errorf("ClassifyBrowser(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestClassifyDevice(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPhone) Mobile Safari/605.1", "Mobile"},
		{"Mozilla/5.0 (iPad) Tablet Safari/605.1", "Tablet"},
		{"Mozilla/5.0 (Windows NT 10.0) Chrome/126.0", "Desktop"},
		{"", "Unknown"},
	}
	for _, c := range cases {
		if got := ClassifyDevice(c.ua); got != c.want {
			t.Errorf("ClassifyDevice(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestCalculateBrowsersSortedByCount(t *testing.T) {
	sessions := []Session{
		{UserAgent: "Firefox/128.0"},
		{UserAgent: "Chrome/126.0 Safari/537.36"},
		{UserAgent: "Chrome/126.0 Safari/537.36"},
	}
	got := CalculateBrowsers(sessions)
	if len(got) != 2 {
		t.Fatalf("expected 2 browser buckets, got %d", len(got))
	}
	if got[0].Browser != "Chrome" || got[0].Count != 2 {
		t.Fatalf("expected Chrome first with 2, got %+v", got[0])
	}
	if got[1].Browser != "Firefox" || got[1].Count != 1 {
		t.Fatalf("expected Firefox second with 1, got %+v", got[1])
	}
}

func TestCalculateDevicesCountsUnknown(t *testing.T) {
	sessions := []Session{{UserAgent: ""}, {UserAgent: "Mobile Safari"}}
	got := CalculateDevices(sessions)
	if len(got) != 2 {
		t.Fatalf("expected 2 device buckets, got %d", len(got))
	}
	for _, d := range got {
		if d.Device != "Unknown" && d.Device != "Mobile" {
			t.Fatalf("unexpected device bucket %+v", d)
		}
	}
}
