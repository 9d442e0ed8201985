package domain

// Batch is an ordered group of frame jobs dispatched together.
// Insertion order equals dequeue order. A batch is transient: built by the
// collector, consumed by one dispatch attempt sequence, then discarded.
type Batch struct {
	// Jobs contains the frames in collection order.
	Jobs []FrameJob

	// TotalBytes is the sum of all payload lengths.
	TotalBytes int
}

// NewBatch creates an empty batch sized for up to maxSize jobs.
func NewBatch(maxSize int) *Batch {
	return &Batch{Jobs: make([]FrameJob, 0, maxSize)}
}

// Add appends a job to the batch.
func (b *Batch) Add(job FrameJob) {
	b.Jobs = append(b.Jobs, job)
	b.TotalBytes += len(job.Payload)
}

// Size returns the number of jobs in the batch.
func (b *Batch) Size() int {
	return len(b.Jobs)
}

// Empty returns true if the batch has no jobs.
func (b *Batch) Empty() bool {
	return len(b.Jobs) == 0
}

// IDs returns the job IDs in batch order, for diagnostics.
func (b *Batch) IDs() []string {
	ids := make([]string, len(b.Jobs))
	for i, j := range b.Jobs {
		ids[i] = j.ID
	}
	return ids
}
