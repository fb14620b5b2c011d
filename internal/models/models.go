package models

type ArrayInfo struct {
	Stem     string `json:"stem"`
	Kind     string `json:"kind"`
	DType    string `json:"dtype,omitempty"`
	Shape    []int  `json:"shape"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	Size     string `json:"size"`
	Checksum string `json:"checksum"`
	Describe string `json:"describe"`
}

type NameEntry struct {
	Dict  string `json:"dict"`
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type BoundaryUsage struct {
	Boundary uint32 `json:"boundary"`
	Count    int    `json:"count"`
	Name     string `json:"name"`
}

type ArrayPage struct {
	Data   []ArrayInfo `json:"data"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
