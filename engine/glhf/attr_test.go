package glhf

import "testing"

func TestAttrFormatSize(t *testing.T) {
	tests := []struct {
		name   string
		format AttrFormat
		want   int
	}{
		{"empty", AttrFormat{}, 0},
		{"quad vertex", AttrFormat{{Name: "position", Type: Vec3}, {Name: "texCoord", Type: Vec2}}, 20},
		{"line vertex", AttrFormat{{Name: "position", Type: Vec3}}, 12},
		{"uniforms", AttrFormat{{Name: "model", Type: Mat4}, {Name: "useTex", Type: Int}, {Name: "color", Type: Vec3}}, 64 + 4 + 12},
	}
	for _, tt := range tests {
		if got := tt.format.Size(); got != tt.want {
			t.Errorf("%s: Size() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAttrFormatIndex(t *testing.T) {
	format := AttrFormat{{Name: "model", Type: Mat4}, {Name: "useTex", Type: Int}, {Name: "color", Type: Vec3}}
	if i := format.Index("useTex"); i != 1 {
		t.Errorf("Index(useTex) = %d, want 1", i)
	}
	if i := format.Index("projection"); i != -1 {
		t.Errorf("Index(projection) = %d, want -1", i)
	}
}
