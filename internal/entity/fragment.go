package entity

// Point is one corner of an OCR bounding box, [x, y] in pixels.
type Point [2]int

// Fragment is one OCR-detected text span. Confidence is 0..1; 0 means the
// engine did not score the detection. BBox lists the four corners in
// top-left, top-right, bottom-right, bottom-left order.
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       []Point `json:"bbox"`
}

// PageFragments maps a 1-based page number to the fragments detected on it.
type PageFragments map[int][]Fragment
