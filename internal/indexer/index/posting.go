package index

// Posting is one document's entry in a word's posting list.
type Posting struct {
	DocID    int
	TermFreq float64
}

// PostingList is ordered by ascending DocID.
type PostingList []Posting
