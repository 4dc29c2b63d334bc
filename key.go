package transferbuf

import "fmt"

// NodeID is a bus node address. Address 0 is the broadcast/anonymous address
// and cannot originate a multi-frame transfer, which lets the zero value
// double as the empty-key sentinel.
type NodeID uint8

const (
	NodeIDBroadcast NodeID = 0
	NodeIDMax       NodeID = 127
)

// IsValid reports whether the node ID can originate a transfer.
func (n NodeID) IsValid() bool {
	return n > NodeIDBroadcast && n <= NodeIDMax
}

// TransferType is the category of a transfer.
type TransferType uint8

const (
	TransferTypeServiceResponse TransferType = iota
	TransferTypeServiceRequest
	TransferTypeMessageBroadcast
	TransferTypeMessageUnicast
)

func (t TransferType) String() string {
	switch t {
	case TransferTypeServiceResponse:
		return "serviceResponse"
	case TransferTypeServiceRequest:
		return "serviceRequest"
	case TransferTypeMessageBroadcast:
		return "messageBroadcast"
	case TransferTypeMessageUnicast:
		return "messageUnicast"
	default:
		return fmt.Sprintf("TransferType(%d)", uint8(t))
	}
}

// Key identifies one in-flight transfer's buffer by its originating node and
// transfer category. Keys are value types: compared with ==, copied freely.
// The zero value is the empty key, used by the manager to mark unused slots.
type Key struct {
	NodeID       NodeID
	TransferType TransferType
}

// IsEmpty reports whether the key is the empty sentinel.
func (k Key) IsEmpty() bool {
	return !k.NodeID.IsValid()
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s", k.NodeID, k.TransferType)
}
