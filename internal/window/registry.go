package window

// Registry owns the four cross-linked lists over the set of live
// windows: the ascending-id global list, the cyclic MRU focus chain,
// the linear (non-wrapping) Z-order, and the taken-list stack of
// hidden-but-mappable tiling windows (spec §4.1).
type Registry struct {
	globalHead, globalTail *Window

	// focusHead is the most-recently-focused window; the chain is
	// circular over exactly the set of visible windows (invariant 1).
	focusHead *Window

	// zTail is the top of the (non-wrapping) Z-order; zHead the bottom.
	zHead, zTail *Window

	takenHead *Window
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// First returns the head of the global list (lowest numeric id / oldest
// still-provisional window), or nil if empty.
func (r *Registry) First() *Window { return r.globalHead }

// Next returns the window immediately after w in the global list.
func (w *Window) Next() *Window { return w.nextGlobal }

// Register inserts a freshly created window at the tail of the global
// list. It is provisional (Num == 0) until Show assigns it an id.
func (r *Registry) Register(w *Window) {
	w.nextGlobal = nil
	if r.globalTail == nil {
		r.globalHead = w
		r.globalTail = w
		return
	}
	r.globalTail.nextGlobal = w
	r.globalTail = w
}

// ByXID looks up a window by its opaque X id. Linear scan: the global
// list is expected to stay small (the size of a visible desktop's
// window set), matching get_window_of_xcb_window's behavior; callers
// needing a hot path (internal/x11) keep their own LRU reverse index.
func (r *Registry) ByXID(xid XID) *Window {
	for w := r.globalHead; w != nil; w = w.nextGlobal {
		if w.XID == xid {
			return w
		}
	}
	return nil
}

// ByNum looks up a window by its assigned numeric id. Returns nil for
// id 0 (unassigned) or if not found.
func (r *Registry) ByNum(id ID) *Window {
	if id == 0 {
		return nil
	}
	for w := r.globalHead; w != nil; w = w.nextGlobal {
		if w.Num == id {
			return w
		}
	}
	return nil
}

// AssignID gives w the smallest free id >= 1 not already used by any
// window in the registry, and reinserts w at the position that keeps
// the global list sorted ascending by Num. It is a no-op if w already
// has a nonzero Num. Must be called exactly once, at a window's first
// show (spec §3 lifecycle).
func (r *Registry) AssignID(w *Window) {
	if w.Num != 0 {
		return
	}
	used := make(map[ID]bool)
	for cur := r.globalHead; cur != nil; cur = cur.nextGlobal {
		if cur.Num != 0 {
			used[cur.Num] = true
		}
	}
	var id ID = 1
	for used[id] {
		id++
	}
	w.Num = id
	r.unlinkGlobal(w)
	r.insertGlobalSorted(w)
}

func (r *Registry) unlinkGlobal(w *Window) {
	if r.globalHead == w {
		r.globalHead = w.nextGlobal
		if r.globalTail == w {
			r.globalTail = nil
		}
		w.nextGlobal = nil
		return
	}
	for cur := r.globalHead; cur != nil; cur = cur.nextGlobal {
		if cur.nextGlobal == w {
			cur.nextGlobal = w.nextGlobal
			if r.globalTail == w {
				r.globalTail = cur
			}
			w.nextGlobal = nil
			return
		}
	}
}

func (r *Registry) insertGlobalSorted(w *Window) {
	if r.globalHead == nil {
		r.globalHead = w
		r.globalTail = w
		w.nextGlobal = nil
		return
	}
	if w.Num != 0 && (r.globalHead.Num == 0 || w.Num < r.globalHead.Num) {
		w.nextGlobal = r.globalHead
		r.globalHead = w
		return
	}
	cur := r.globalHead
	for cur.nextGlobal != nil {
		next := cur.nextGlobal
		if w.Num != 0 && next.Num != 0 && w.Num < next.Num {
			break
		}
		cur = cur.nextGlobal
	}
	w.nextGlobal = cur.nextGlobal
	cur.nextGlobal = w
	if r.globalTail == cur {
		r.globalTail = w
	}
}

// Destroy unlinks w from every list before it is released, per the
// lifetime rule that destruction clears all inbound cross-references.
// It never touches w.XID — the caller (X transport) owns that.
func (r *Registry) Destroy(w *Window) {
	r.unlinkGlobal(w)
	r.removeFromFocusChain(w)
	r.removeFromZOrder(w)
	r.removeFromTaken(w)
}

// --- Focus chain -----------------------------------------------------

// FocusChainInsert adds a newly-visible window to the focus chain as
// the least-recently-focused entry (just after the current head, i.e.
// at the "oldest" position when walking backwards from the head) so
// that it participates in the cycle without preempting whatever is
// already focused.
func (r *Registry) FocusChainInsert(w *Window) {
	if r.focusHead == nil {
		w.focusNext = w
		w.focusPrev = w
		r.focusHead = w
		return
	}
	next := r.focusHead.focusNext
	r.focusHead.focusNext = w
	w.focusPrev = r.focusHead
	w.focusNext = next
	next.focusPrev = w
}

func (r *Registry) removeFromFocusChain(w *Window) {
	if w.focusNext == nil && w.focusPrev == nil && r.focusHead != w {
		return
	}
	if w.focusNext == w {
		// sole member
		r.focusHead = nil
	} else {
		w.focusPrev.focusNext = w.focusNext
		w.focusNext.focusPrev = w.focusPrev
		if r.focusHead == w {
			r.focusHead = w.focusNext
		}
	}
	w.focusNext = nil
	w.focusPrev = nil
}

// SetFocusWindow moves w to the head of the focus chain (recency
// order): the most recently focused window is always the chain head,
// and w is spliced in just after the previous head, so walking
// backwards (FocusPrevious) from the head visits windows from most to
// least recently focused. w must already be linked in
// (FocusChainInsert was called when it became visible).
func (r *Registry) SetFocusWindow(w *Window) {
	if w == nil || r.focusHead == w {
		return
	}
	r.removeFromFocusChain(w)
	// Reinsert w at the head: splice it in just after the previous focus.
	if r.focusHead == nil {
		w.focusNext = w
		w.focusPrev = w
		r.focusHead = w
		return
	}
	next := r.focusHead.focusNext
	r.focusHead.focusNext = w
	w.focusPrev = r.focusHead
	w.focusNext = next
	next.focusPrev = w
	r.focusHead = w
}

// FocusHead returns the currently focused window, or nil if none is
// visible.
func (r *Registry) FocusHead() *Window { return r.focusHead }

// FocusNext / FocusPrevious walk the cyclic chain starting at w.
func FocusNext(w *Window) *Window     { return w.focusNext }
func FocusPrevious(w *Window) *Window { return w.focusPrev }

// --- Z-order -----------------------------------------------------------

// ZOrderInsert appends w to the top of the (non-wrapping) Z-order. Call
// once, the first time a window is ever mapped.
func (r *Registry) ZOrderInsert(w *Window) {
	w.belowZ = r.zTail
	w.aboveZ = nil
	if r.zTail != nil {
		r.zTail.aboveZ = w
	} else {
		r.zHead = w
	}
	r.zTail = w
}

func (r *Registry) removeFromZOrder(w *Window) {
	if w.aboveZ == nil && w.belowZ == nil && r.zHead != w && r.zTail != w {
		return
	}
	if w.belowZ != nil {
		w.belowZ.aboveZ = w.aboveZ
	} else if r.zHead == w {
		r.zHead = w.aboveZ
	}
	if w.aboveZ != nil {
		w.aboveZ.belowZ = w.belowZ
	} else if r.zTail == w {
		r.zTail = w.belowZ
	}
	w.aboveZ = nil
	w.belowZ = nil
}

// SetWindowAbove moves w to the top of the Z-order.
func (r *Registry) SetWindowAbove(w *Window) {
	if r.zTail == w {
		return
	}
	r.removeFromZOrder(w)
	w.belowZ = r.zTail
	w.aboveZ = nil
	if r.zTail != nil {
		r.zTail.aboveZ = w
	} else {
		r.zHead = w
	}
	r.zTail = w
}

// ZTop / ZBottom return the top/bottom of the Z-order.
func (r *Registry) ZTop() *Window    { return r.zTail }
func (r *Registry) ZBottom() *Window { return r.zHead }

// ZAbove / ZBelow walk the linear Z-order.
func ZAbove(w *Window) *Window { return w.aboveZ }
func ZBelow(w *Window) *Window { return w.belowZ }

// --- Taken-list ----------------------------------------------------------

// PushTaken adds a hidden tiling window to the taken-list, most recent
// on top (the list is a singly-linked stack via previousTaken).
func (r *Registry) PushTaken(w *Window) {
	w.previousTaken = r.takenHead
	r.takenHead = w
}

// PopTaken removes and returns the most recently hidden tiling window
// eligible to fill a freed leaf, or nil if the taken-list is empty.
func (r *Registry) PopTaken() *Window {
	w := r.takenHead
	if w == nil {
		return nil
	}
	r.takenHead = w.previousTaken
	w.previousTaken = nil
	return w
}

func (r *Registry) removeFromTaken(w *Window) {
	if r.takenHead == w {
		r.takenHead = w.previousTaken
		w.previousTaken = nil
		return
	}
	for cur := r.takenHead; cur != nil; cur = cur.previousTaken {
		if cur.previousTaken == w {
			cur.previousTaken = w.previousTaken
			w.previousTaken = nil
			return
		}
	}
}

// TakenHead exposes the top of the taken-list without popping it, for
// invariant checks.
func (r *Registry) TakenHead() *Window { return r.takenHead }

// RemoveTaken removes w from the taken-list if present, without
// returning it. Used when a window leaves TILING mode while hidden
// (spec §4.2 "If not visible and prior mode = TILING, remove from
// taken-list").
func (r *Registry) RemoveTaken(w *Window) { r.removeFromTaken(w) }

// --- Hide/Show bookkeeping shared across the focus/taken lists --------

// Show marks w visible, assigning it a numeric id on first show,
// linking it into the focus chain and (if not already present) the
// Z-order, and removing it from the taken-list.
func (r *Registry) Show(w *Window) {
	r.AssignID(w)
	if !w.IsVisible {
		w.IsVisible = true
		r.FocusChainInsert(w)
	}
	if !w.WasEverMapped {
		w.WasEverMapped = true
		r.ZOrderInsert(w)
	}
	r.removeFromTaken(w)
}

// Hide marks w invisible, removes it from the focus chain, and if it
// was a tiling window, pushes it onto the taken-list (invariant 2).
func (r *Registry) Hide(w *Window) {
	if !w.IsVisible {
		return
	}
	w.IsVisible = false
	r.removeFromFocusChain(w)
	if w.Mode == ModeTiling {
		r.PushTaken(w)
	}
}

// NextTiling finds the next tiling, hidden, ever-mapped window after
// start in the global list, cyclically, excluding start itself. This
// resolves the spec's Open Question about
// get_next_showable_tiling_window: "find the next element in the
// global list, cyclically, satisfying the predicate, excluding the
// starting element."
func (r *Registry) NextTiling(start *Window) *Window {
	return r.scanTiling(start, true)
}

// PreviousTiling returns the last match encountered by the same
// cyclic forward scan NextTiling performs, so wraparound is symmetric
// between NEXT-WINDOW and PREVIOUS-WINDOW (per the spec's Open
// Question resolution).
func (r *Registry) PreviousTiling(start *Window) *Window {
	return r.scanTiling(start, false)
}

func (r *Registry) scanTiling(start *Window, first bool) *Window {
	if r.globalHead == nil || start == nil {
		return nil
	}
	var all []*Window
	startIdx := -1
	for cur, i := r.globalHead, 0; cur != nil; cur, i = cur.nextGlobal, i+1 {
		all = append(all, cur)
		if cur == start {
			startIdx = i
		}
	}
	if startIdx == -1 {
		return nil
	}
	n := len(all)
	var last *Window
	for step := 1; step <= n; step++ {
		w := all[(startIdx+step)%n]
		if w == start {
			continue
		}
		if w.Mode == ModeTiling && !w.IsVisible && w.WasEverMapped {
			if first {
				return w
			}
			last = w
		}
	}
	return last
}
