package entity

import (
	"strings"

	"github.com/Schebb/bug-mcjointcoll/internal/logger"
	"github.com/Schebb/bug-mcjointcoll/internal/px"
)

// FilterData snapshots the simulation filter data of every shape on the entity's
// body, in shape order.
func (e *Entity) FilterData() []px.FilterData {
	shapes := e.Body().Shapes()
	out := make([]px.FilterData, len(shapes))
	for i, s := range shapes {
		out[i] = s.SimulationFilterData()
	}
	return out
}

// SetFilterData restores a snapshot taken with FilterData onto the entity's
// shapes, in the same shape order. Extra snapshot entries are ignored.
func (e *Entity) SetFilterData(fd []px.FilterData) {
	shapes := e.Body().Shapes()
	for i, s := range shapes {
		if i >= len(fd) {
			break
		}
		s.SetSimulationFilterData(fd[i])
	}
}

// LogFilterData dumps the entity's per-shape filter words through the logger,
// one line per shape, each word as 32 bits least-significant first.
func LogFilterData(log *logger.Logger, label string, e *Entity) {
	log.Log("filter data: " + label)
	for _, fd := range e.FilterData() {
		words := []string{
			binaryWord(fd.Word0),
			binaryWord(fd.Word1),
			binaryWord(fd.Word2),
			binaryWord(fd.Word3),
		}
		log.Log("  " + strings.Join(words, ", "))
	}
}

// binaryWord formats a filter word bit by bit, bit 0 first.
func binaryWord(w uint32) string {
	var b [32]byte
	for i := range b {
		if w&(1<<i) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b[:])
}
