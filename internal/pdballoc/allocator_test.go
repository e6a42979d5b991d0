package pdballoc

import "testing"

func TestAllocateSingleTrackExport(t *testing.T) {
	plan, err := Allocate(map[TableType]int{
		Tracks: 1, Genres: 1, Artists: 1, Albums: 1, Labels: 1,
		Keys: 1, Colors: 1, Playlists: 1, PlaylistEntries: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	tracks := plan.Tables[Tracks]
	if got := tracks.DataPages; len(got) != 1 || got[0] != 2 {
		t.Fatalf("Tracks.DataPages = %v, want [2]", got)
	}
	if plan.NextUnusedPage != 53 {
		t.Errorf("NextUnusedPage = %d, want 53", plan.NextUnusedPage)
	}
}

func TestAllocateTrackOverflowSkipsPlaylistEntriesCandidate(t *testing.T) {
	plan, err := Allocate(map[TableType]int{
		Tracks: 5, Genres: 1, Artists: 1, Albums: 1, Labels: 1,
		Keys: 1, Colors: 1, Playlists: 1, PlaylistEntries: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	tracks := plan.Tables[Tracks]
	want := []uint32{2, 51, 53, 54, 55}
	if len(tracks.DataPages) != len(want) {
		t.Fatalf("Tracks.DataPages = %v, want %v", tracks.DataPages, want)
	}
	for i, p := range want {
		if tracks.DataPages[i] != p {
			t.Errorf("Tracks.DataPages[%d] = %d, want %d", i, tracks.DataPages[i], p)
		}
	}
	if tracks.EmptyCandidate != 56 {
		t.Errorf("Tracks.EmptyCandidate = %d, want 56", tracks.EmptyCandidate)
	}
	for _, p := range tracks.DataPages {
		if p == 52 {
			t.Errorf("Tracks chain must skip page 52 (PlaylistEntries empty_candidate)")
		}
	}
}

func TestAllocateNoOverlappingPages(t *testing.T) {
	plan, err := Allocate(map[TableType]int{
		Tracks: 3, Genres: 2, Artists: 2, Albums: 1, Labels: 1,
		Keys: 1, Colors: 1, Playlists: 1, PlaylistEntries: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint32]TableType)
	for tt, layout := range plan.Tables {
		pages := append([]uint32{layout.HeaderPage}, layout.DataPages...)
		if layout.EmptyCandidate != 0 {
			pages = append(pages, layout.EmptyCandidate)
		}
		for _, p := range pages {
			if owner, dup := seen[p]; dup && owner != tt {
				t.Fatalf("page %d claimed by both %v and %v", p, owner, tt)
			}
			seen[p] = tt
		}
	}
}
