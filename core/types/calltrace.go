package types

import "github.com/kiyomizu-labs/devnode/common"

// CallType distinguishes the call-tree node kinds the VM collaborator can
// report, including the near-call distinction this spec adds over a plain
// EVM trace (spec.md §12: near-call folding).
type CallType int

const (
	CallTypeCall CallType = iota
	CallTypeStaticCall
	CallTypeDelegateCall
	CallTypeCreate
	CallTypeCreate2
	CallTypeNearCall
)

func (t CallType) String() string {
	switch t {
	case CallTypeCall:
		return "call"
	case CallTypeStaticCall:
		return "staticcall"
	case CallTypeDelegateCall:
		return "delegatecall"
	case CallTypeCreate:
		return "create"
	case CallTypeCreate2:
		return "create2"
	case CallTypeNearCall:
		return "nearcall"
	default:
		return "unknown"
	}
}

// Call is one node of the debug call tree the VM collaborator returns from
// an inspect() invocation (spec.md §4.5, §12). NearCall nodes are an
// implementation artifact of the VM's internal call convention and are
// folded into their parent's Calls before the tree is handed to a caller,
// rather than surfaced as a distinct visible frame.
type Call struct {
	Type         CallType
	From         common.Address
	To           common.Address
	Gas          uint64
	GasUsed      uint64
	Value        []byte // raw big-endian wei amount, nil for non-value calls
	Input        []byte
	Output       []byte
	Error        string
	RevertReason string
	Calls        []*Call
}

// FoldNearCalls removes CallTypeNearCall nodes from the tree, splicing their
// children into the position the near-call occupied in its parent's Calls
// slice, and returns the folded tree. A near call with no children simply
// vanishes: it carried no observable externally-visible effect of its own.
func FoldNearCalls(root *Call) *Call {
	if root == nil {
		return nil
	}
	root.Calls = foldChildren(root.Calls)
	return root
}

func foldChildren(calls []*Call) []*Call {
	folded := make([]*Call, 0, len(calls))
	for _, c := range calls {
		c.Calls = foldChildren(c.Calls)
		if c.Type == CallTypeNearCall {
			folded = append(folded, c.Calls...)
			continue
		}
		folded = append(folded, c)
	}
	return folded
}
