package export

import (
	"testing"

	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbrows"
)

func TestPlanAssignsStableFirstSeenIDs(t *testing.T) {
	lib := model.LibraryInput{
		Tracks: []model.Track{
			{ID: 1, Title: "A", ArtistName: "Zed", AudioPath: "Music/a.mp3"},
			{ID: 2, Title: "B", ArtistName: "Ann", AudioPath: "Music/b.mp3"},
			{ID: 3, Title: "C", ArtistName: "Zed", AudioPath: "Music/c.mp3"},
		},
	}
	planned, err := Plan(lib, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	artists := planned.Rows[pdballoc.Artists]
	if len(artists) != 2 {
		t.Fatalf("got %d artist rows, want 2", len(artists))
	}
	for i, want := range []string{"Zed", "Ann"} {
		a := artists[i].(pdbrows.ArtistRow)
		if a.ID != uint32(i+1) || a.Name != want {
			t.Errorf("artist row %d = {%d %q}, want {%d %q}", i, a.ID, a.Name, i+1, want)
		}
	}
	tracks := planned.Rows[pdballoc.Tracks]
	if len(tracks) != 3 {
		t.Fatalf("got %d track rows, want 3", len(tracks))
	}
}

func TestPlanDerivesAnalyzePathDeterministically(t *testing.T) {
	lib := model.LibraryInput{
		Tracks: []model.Track{{ID: 1, Title: "A", AudioPath: "Music/a.mp3"}},
	}
	p1, err := Plan(lib, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Plan(lib, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	a1 := p1.TrackAnlz[1].AnalyzePath
	a2 := p2.TrackAnlz[1].AnalyzePath
	if a1 != a2 {
		t.Errorf("AnalyzePath not deterministic: %q vs %q", a1, a2)
	}
	if a1 == "" {
		t.Fatal("empty AnalyzePath")
	}
}

func TestPlanZeroTracksIsNotAnError(t *testing.T) {
	if _, err := Plan(model.LibraryInput{}, config.Default()); err != nil {
		t.Fatalf("empty library should plan cleanly: %v", err)
	}
}
