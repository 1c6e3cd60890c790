package sqlir

import "github.com/ha1tch/preqlc/pqltypes"

// NewArith builds an Arith node for the same-type scalar path of
// spec.md §4.3's Arith case. The source-location argument the original
// threads through (`arith.meta`) belongs to the compiler's error
// reporting, not the IR itself, so it is not carried here.
func NewArith(resultType pqltypes.Type, op ArithOp, args [2]Node) Node {
	return Arith{Type: resultType, Op: op, Args: args}
}
