package models

import "testing"

func TestSongValidate(t *testing.T) {
	tc := []struct {
		name    string
		song    Song
		wantErr bool
	}{
		{
			name: "valid",
			song: Song{Title: "Song", Artist: "Artist", PackID: "p1", Status: StatusFuturePlans},
		},
		{
			name:    "missing title",
			song:    Song{Artist: "Artist", PackID: "p1", Status: StatusFuturePlans},
			wantErr: true,
		},
		{
			name:    "blank title",
			song:    Song{Title: "   ", Artist: "Artist", PackID: "p1", Status: StatusFuturePlans},
			wantErr: true,
		},
		{
			name:    "missing artist",
			song:    Song{Title: "Song", PackID: "p1", Status: StatusFuturePlans},
			wantErr: true,
		},
		{
			name:    "missing pack",
			song:    Song{Title: "Song", Artist: "Artist", Status: StatusFuturePlans},
			wantErr: true,
		},
		{
			name:    "invalid status",
			song:    Song{Title: "Song", Artist: "Artist", PackID: "p1", Status: "shipped"},
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.song.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSongDisplayStatus(t *testing.T) {
	tc := []struct {
		status string
		want   string
	}{
		{status: StatusFuturePlans, want: "Future Plans"},
		{status: StatusInProgress, want: "In Progress"},
		{status: StatusReleased, want: "Released"},
		{status: "custom state", want: "custom state"},
	}

	for _, tt := range tc {
		s := Song{Status: tt.status}
		if got := s.DisplayStatus(); got != tt.want {
			t.Errorf("DisplayStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestPackValidate(t *testing.T) {
	p := Pack{Name: ""}
	if err := p.Validate(); err == nil {
		t.Error("expected error for blank pack name")
	}

	p.Name = "Fall Pack"
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAlbumSeriesValidate(t *testing.T) {
	tc := []struct {
		name    string
		series  AlbumSeries
		wantErr bool
	}{
		{name: "valid", series: AlbumSeries{ArtistName: "Artist", AlbumName: "Album", PackID: "p1"}},
		{name: "missing artist", series: AlbumSeries{AlbumName: "Album", PackID: "p1"}, wantErr: true},
		{name: "missing album", series: AlbumSeries{ArtistName: "Artist", PackID: "p1"}, wantErr: true},
		{name: "missing pack", series: AlbumSeries{ArtistName: "Artist", AlbumName: "Album"}, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
