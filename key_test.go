package transferbuf

import "testing"

func TestKey(t *testing.T) {
	t.Run("zero value is the empty sentinel", func(t *testing.T) {
		var k Key
		if !k.IsEmpty() {
			t.Fatal("expected zero-value key to be empty")
		}
	})

	t.Run("broadcast node ID cannot form a key", func(t *testing.T) {
		k := Key{NodeID: NodeIDBroadcast, TransferType: TransferTypeMessageBroadcast}
		if !k.IsEmpty() {
			t.Fatal("expected key with broadcast node ID to be empty")
		}
	})

	t.Run("node ID validity range", func(t *testing.T) {
		cases := []struct {
			id    NodeID
			valid bool
		}{
			{0, false},
			{1, true},
			{42, true},
			{NodeIDMax, true},
			{NodeIDMax + 1, false},
			{255, false},
		}
		for _, c := range cases {
			if got := c.id.IsValid(); got != c.valid {
				t.Errorf("expected NodeID(%d).IsValid() = %v, got %v", c.id, c.valid, got)
			}
		}
	})

	t.Run("keys are equal iff both fields match", func(t *testing.T) {
		a := Key{NodeID: 7, TransferType: TransferTypeServiceRequest}
		b := Key{NodeID: 7, TransferType: TransferTypeServiceRequest}
		c := Key{NodeID: 7, TransferType: TransferTypeServiceResponse}
		d := Key{NodeID: 8, TransferType: TransferTypeServiceRequest}
		if a != b {
			t.Error("expected keys with identical fields to be equal")
		}
		if a == c || a == d {
			t.Error("expected keys with differing fields to not be equal")
		}
	})

	t.Run("String", func(t *testing.T) {
		k := Key{NodeID: 12, TransferType: TransferTypeMessageBroadcast}
		if got, want := k.String(), "12/messageBroadcast"; got != want {
			t.Errorf("expected key string %q, got %q", want, got)
		}
		if got, want := TransferType(200).String(), "TransferType(200)"; got != want {
			t.Errorf("expected transfer type string %q, got %q", want, got)
		}
	})
}
