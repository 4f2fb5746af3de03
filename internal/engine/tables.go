package engine

import "github.com/vk/systemic/internal/sysval"

// statusSet is a small set of sysval.Status values. A nil statusSet is the
// ALL sentinel: every status satisfies it, disabling the check entirely.
type statusSet map[sysval.Status]bool

func (s statusSet) allows(st sysval.Status) bool {
	if s == nil {
		return true
	}
	return s[st]
}

func newStatusSet(statuses ...sysval.Status) statusSet {
	s := make(statusSet, len(statuses))
	for _, st := range statuses {
		s[st] = true
	}
	return s
}

// canRunOnStatus is the can-run-on-status table. A transition only proceeds
// for a Component whose current status is in the set for that row. The
// "resume" entries are folded into Init here, since a stored Status never
// actually holds a distinct resume value.
var canRunOnStatus = map[Transition]statusSet{
	Init:    newStatusSet(sysval.StatusAbsent, sysval.StatusHalt),
	Halt:    newStatusSet(sysval.StatusInit, sysval.StatusSuspend),
	Resume:  newStatusSet(sysval.StatusSuspend),
	Suspend: newStatusSet(sysval.StatusInit),
}

// requiredDependencyStatus is the required-dependency-status table: every
// neighbor on the dependency side of a Component undergoing this
// transition must have a status in this set. A nil entry is ALL.
var requiredDependencyStatus = map[Transition]statusSet{
	Init:    newStatusSet(sysval.StatusInit),
	Resume:  newStatusSet(sysval.StatusInit),
	Halt:    nil,
	Suspend: nil,
}

// requiredDependentStatus is the required-dependent-status table: every
// neighbor on the dependent side must have a status in this set.
var requiredDependentStatus = map[Transition]statusSet{
	Init:    nil,
	Resume:  nil,
	Halt:    newStatusSet(sysval.StatusHalt, sysval.StatusAbsent),
	Suspend: newStatusSet(sysval.StatusSuspend, sysval.StatusHalt, sysval.StatusAbsent),
}

// targetStatus is the Status a Component moves to on a successful run of
// this Transition. Resume folds into StatusInit, per the same footnote.
var targetStatus = map[Transition]sysval.Status{
	Init:    sysval.StatusInit,
	Halt:    sysval.StatusHalt,
	Suspend: sysval.StatusSuspend,
	Resume:  sysval.StatusInit,
}
