package pipeline

import "github.com/oomips/sim/timing/latency"

// CDBSlot carries a single functional unit's completed result for exactly
// one cycle; consumers read it during the snoop stage of the following
// cycle and it is cleared before the next unit publishes to it.
type CDBSlot struct {
	Valid bool
	Tag   int
	Value uint32
}

// CDB is the seven-slot common data bus, one slot per functional unit: the
// load/store queue, branch, ALU, FP-add, FP-multiply, FP-compare, and
// FP-others units each own a slot and never contend for it.
type CDB struct {
	slots [7]CDBSlot
}

// NewCDB returns an empty CDB.
func NewCDB() *CDB {
	return &CDB{}
}

func cdbIndex(u latency.Unit) int {
	switch u {
	case latency.UnitLSQ:
		return 0
	case latency.UnitBranch:
		return 1
	case latency.UnitALU:
		return 2
	case latency.UnitFPAdd:
		return 3
	case latency.UnitFPMul:
		return 4
	case latency.UnitFPCompare:
		return 5
	case latency.UnitFPOthers:
		return 6
	default:
		return -1
	}
}

// Publish places a unit's result onto its slot, visible to snoopers starting
// next cycle.
func (c *CDB) Publish(u latency.Unit, tag int, value uint32) {
	idx := cdbIndex(u)
	if idx < 0 {
		return
	}
	c.slots[idx] = CDBSlot{Valid: true, Tag: tag, Value: value}
}

// Clear empties every slot; called once per cycle before units publish into
// it, so a slot a unit didn't drive this cycle reads as invalid rather than
// replaying last cycle's value.
func (c *CDB) Clear() {
	for i := range c.slots {
		c.slots[i] = CDBSlot{}
	}
}

// Snoop resolves a pending operand against the bus if any slot's tag
// matches, otherwise returns it unchanged.
func (c *CDB) Snoop(o Operand) Operand {
	if o.Ready {
		return o
	}
	for _, s := range c.slots {
		if s.Valid && s.Tag == o.Tag {
			return ReadyOperand(s.Value)
		}
	}
	return o
}

// Slots returns a snapshot of the bus's seven slots.
func (c *CDB) Slots() [7]CDBSlot {
	return c.slots
}
