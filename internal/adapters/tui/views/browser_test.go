package views

import "testing"

func filterFixture() []IconRow {
	return []IconRow{
		{Identifier: "oxygen_actions_edit-copy", File: "edit-copy.png", Label: "Edit Copy"},
		{Identifier: "oxygen_actions_edit-cut", File: "edit-cut.png", Label: "Edit Cut"},
		{Identifier: "oxygen_apps_kmail", File: "kmail.png", Label: "KMail", Hints: []string{"email", "mail client"}},
		{Identifier: "breeze_places_folder", File: "folder.svg"},
	}
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"oxygen_actions_edit-copy", "oxygen_actions_edit-cut", "oxygen_apps_kmail", "breeze_places_folder"}},
		{"identifier substring", "edit-c", []string{"oxygen_actions_edit-copy", "oxygen_actions_edit-cut"}},
		{"label match is case-insensitive", "kmail", []string{"oxygen_apps_kmail"}},
		{"hint match", "email", []string{"oxygen_apps_kmail"}},
		{"filename match", "folder", []string{"breeze_places_folder"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRows(filterFixture(), tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, row := range got {
				if row.Identifier != tt.want[i] {
					t.Errorf("row %d = %s, want %s", i, row.Identifier, tt.want[i])
				}
			}
		})
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(25)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages())
	}
	if !p.NextPage() {
		t.Error("NextPage on first page returned false")
	}
	if p.CurrentPage() != 2 || p.Cursor() != 10 {
		t.Errorf("page = %d, cursor = %d", p.CurrentPage(), p.Cursor())
	}

	// Cursor movement pulls the page along.
	for range 12 {
		p.CursorDown()
	}
	if p.Cursor() != 22 || p.CurrentPage() != 3 {
		t.Errorf("cursor = %d, page = %d", p.Cursor(), p.CurrentPage())
	}
	if p.CursorDown() && p.Cursor() > 24 {
		t.Error("cursor moved past the last item")
	}

	// Shrinking the total clamps the cursor.
	p.SetTotal(5)
	if p.Cursor() != 4 {
		t.Errorf("cursor after shrink = %d, want 4", p.Cursor())
	}
}
