package elevconsts

import "testing"

func TestDirnString(t *testing.T) {
	dirns := []Dirn{Up, Down, Stationary, Dirn(7)}
	expected := []string{"Up", "Down", "Stationary", "Undefined"}

	for index, dirn := range dirns {
		if dirn.String() != expected[index] {
			t.Errorf("Dirn(%d).String() = %v, expected %v", int(dirn), dirn.String(), expected[index])
		}
	}
}

func TestTravelAndOpposite(t *testing.T) {
	if Travel(0, 3) != Up || Travel(5, 1) != Down || Travel(4, 4) != Stationary {
		t.Errorf("Travel() returned wrong directions")
	}
	if Up.Opposite() != Down || Down.Opposite() != Up || Stationary.Opposite() != Stationary {
		t.Errorf("Opposite() returned wrong directions")
	}
}
