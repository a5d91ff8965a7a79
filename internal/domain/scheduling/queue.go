package scheduling

import (
	"errors"
	"sort"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrEntryNotInQueue = errors.New("queue entry is not part of this queue")
	ErrEntryNotQueued  = errors.New("only QUEUED entries can be moved to the top")
)

var queueTransitions = map[entity.QueueStatus][]entity.QueueStatus{
	entity.QueueStatusQueued: {
		entity.QueueStatusWaiting, entity.QueueStatusWithDoctor, entity.QueueStatusNoShow, entity.QueueStatusLeft,
	},
	entity.QueueStatusWaiting: {
		entity.QueueStatusQueued, entity.QueueStatusWithDoctor, entity.QueueStatusNoShow, entity.QueueStatusLeft,
	},
	entity.QueueStatusWithDoctor: {
		entity.QueueStatusCompleted, entity.QueueStatusNoShow, entity.QueueStatusLeft,
	},
}

// CanTransition reports whether a queue entry may move from one status to another
func CanTransition(from, to entity.QueueStatus) bool {
	for _, s := range queueTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PromoteToTop computes the queue numbers after moving target to the front of
// the QUEUED entries. The QUEUED entries ahead of it shift up by one and the
// target takes the smallest of their numbers. When a shifted number would hit
// a number held by a non-QUEUED entry, the QUEUED numbers are rotated instead,
// which yields the same order. Only changed entries appear in the result.
func PromoteToTop(entries []entity.QueueEntry, targetID uuid.UUID) (map[uuid.UUID]int, error) {
	var target *entity.QueueEntry
	for i := range entries {
		if entries[i].ID == targetID {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return nil, ErrEntryNotInQueue
	}
	if target.Status != entity.QueueStatusQueued {
		return nil, ErrEntryNotQueued
	}

	var ahead []entity.QueueEntry
	for _, e := range entries {
		if e.ID != targetID && e.Status == entity.QueueStatusQueued && e.QueueNumber < target.QueueNumber {
			ahead = append(ahead, e)
		}
	}
	changes := make(map[uuid.UUID]int, len(ahead)+1)
	if len(ahead) == 0 {
		return changes, nil
	}
	sort.Slice(ahead, func(i, j int) bool { return ahead[i].QueueNumber < ahead[j].QueueNumber })

	participants := make(map[uuid.UUID]bool, len(ahead)+1)
	participants[targetID] = true
	for _, e := range ahead {
		participants[e.ID] = true
	}
	held := make(map[int]bool)
	for _, e := range entries {
		if !participants[e.ID] {
			held[e.QueueNumber] = true
		}
	}

	shiftCollides := false
	for _, e := range ahead {
		if held[e.QueueNumber+1] {
			shiftCollides = true
			break
		}
	}

	changes[targetID] = ahead[0].QueueNumber
	for i, e := range ahead {
		if !shiftCollides {
			changes[e.ID] = e.QueueNumber + 1
			continue
		}
		if i+1 < len(ahead) {
			changes[e.ID] = ahead[i+1].QueueNumber
		} else {
			changes[e.ID] = target.QueueNumber
		}
	}
	return changes, nil
}

// SortByQueueNumber orders entries in place
func SortByQueueNumber(entries []entity.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].QueueNumber < entries[j].QueueNumber })
}
