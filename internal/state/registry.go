package state

import fsutil "github.com/kk-code-lab/docmark/internal/fs"

// DocumentInstance is the content held for one kind. PageCount is 0 while
// pagination is unknown.
type DocumentInstance struct {
	Handle    string
	Text      string
	PageCount int
	Document  *fsutil.Document
	Loaded    bool

	generation uint64
}

// ActiveView projects the instance of the selected kind.
type ActiveView struct {
	Kind      DocumentKind
	Handle    string
	Text      string
	PageCount int
	Document  *fsutil.Document
	Loaded    bool
}

// PageCountKnown reports whether pagination has been reported.
func (v ActiveView) PageCountKnown() bool {
	return v.PageCount > 0
}

// Registry keeps one independent slot per kind and the currently selected
// kind. It is the only writer of document content.
type Registry struct {
	active DocumentKind
	slots  map[DocumentKind]*DocumentInstance
	// nextGeneration is shared by all slots so a generation is never reused.
	nextGeneration uint64
}

// NewRegistry returns a registry with every slot empty and no kind selected.
func NewRegistry() *Registry {
	r := &Registry{slots: make(map[DocumentKind]*DocumentInstance, len(Kinds))}
	for _, k := range Kinds {
		r.slots[k] = &DocumentInstance{}
	}
	return r
}

// Active returns the selected kind.
func (r *Registry) Active() DocumentKind {
	return r.active
}

// SelectKind makes kind active and returns the projection. Instance data is
// never touched.
func (r *Registry) SelectKind(kind DocumentKind) ActiveView {
	if _, ok := r.slots[kind]; ok || kind == KindNone {
		r.active = kind
	}
	return r.View()
}

// View returns the projection of the active slot.
func (r *Registry) View() ActiveView {
	inst, ok := r.slots[r.active]
	if !ok {
		return ActiveView{Kind: r.active}
	}
	return ActiveView{
		Kind:      r.active,
		Handle:    inst.Handle,
		Text:      inst.Text,
		PageCount: inst.PageCount,
		Document:  inst.Document,
		Loaded:    inst.Loaded,
	}
}

// Instance returns a copy of the slot for kind.
func (r *Registry) Instance(kind DocumentKind) DocumentInstance {
	if inst, ok := r.slots[kind]; ok {
		return *inst
	}
	return DocumentInstance{}
}

// Generation returns the current generation of kind's slot.
func (r *Registry) Generation(kind DocumentKind) uint64 {
	if inst, ok := r.slots[kind]; ok {
		return inst.generation
	}
	return 0
}

func (r *Registry) bump(inst *DocumentInstance) uint64 {
	r.nextGeneration++
	inst.generation = r.nextGeneration
	return inst.generation
}

// Upload replaces kind's slot with already decoded text. Page count becomes
// unknown. The returned generation supersedes any pending load.
func (r *Registry) Upload(kind DocumentKind, handle, text string) uint64 {
	inst, ok := r.slots[kind]
	if !ok {
		return 0
	}
	*inst = DocumentInstance{Handle: handle, Text: text, Loaded: true}
	return r.bump(inst)
}

// BeginLoad starts an asynchronous upload into kind's slot. The slot keeps
// its current content until CompleteLoad is called with the returned
// generation.
func (r *Registry) BeginLoad(kind DocumentKind) uint64 {
	inst, ok := r.slots[kind]
	if !ok {
		return 0
	}
	return r.bump(inst)
}

// CompleteLoad stores a decoded document if generation is still current for
// kind. Late results from a superseded load return false and change nothing.
func (r *Registry) CompleteLoad(kind DocumentKind, generation uint64, handle string, doc *fsutil.Document) bool {
	inst, ok := r.slots[kind]
	if !ok || generation == 0 || inst.generation != generation {
		return false
	}
	*inst = DocumentInstance{
		Handle:     handle,
		Loaded:     true,
		Document:   doc,
		PageCount:  doc.PageCount(),
		generation: generation,
	}
	if doc != nil {
		inst.Text = doc.Text
	}
	return true
}

// ReportPageCount stores count on kind's slot. It returns true when the
// active view changed as a result, which only happens for the active kind.
func (r *Registry) ReportPageCount(kind DocumentKind, count int) bool {
	inst, ok := r.slots[kind]
	if !ok {
		return false
	}
	if count < 0 {
		count = 0
	}
	inst.PageCount = count
	return kind == r.active
}

// ReportPageCountAt is ReportPageCount guarded by a generation check, for
// counts measured asynchronously. It reports whether the count was stored.
func (r *Registry) ReportPageCountAt(kind DocumentKind, generation uint64, count int) bool {
	inst, ok := r.slots[kind]
	if !ok || inst.generation != generation {
		return false
	}
	r.ReportPageCount(kind, count)
	return true
}

// Reset empties every slot and deselects the active kind. Pending loads are
// invalidated.
func (r *Registry) Reset() {
	for _, inst := range r.slots {
		*inst = DocumentInstance{}
		r.bump(inst)
	}
	r.active = KindNone
}
