package types

import "encoding/json"

// sentinelFileSize is substituted when the server omits file_size, matching
// spec.md §8's documented fallback (u32::MAX in the Rust original).
const sentinelFileSize uint32 = 1<<32 - 1

// File describes a file ready to be downloaded via Bot.DownloadFile. The
// path is valid for at least one hour from when GetFile returned it.
type File struct {
	ID       string `json:"file_id"`
	UniqueID string `json:"file_unique_id"`
	Size     uint32 `json:"file_size"`
	Path     string `json:"file_path"`
}

// UnmarshalJSON substitutes sentinelFileSize when the server omits
// file_size, so decoding always succeeds per the documented boundary
// behavior rather than leaving Size at its zero value (which would be
// indistinguishable from "empty file").
func (f *File) UnmarshalJSON(data []byte) error {
	type alias File
	aux := struct {
		Size *uint32 `json:"file_size"`
		*alias
	}{alias: (*alias)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Size == nil {
		f.Size = sentinelFileSize
	} else {
		f.Size = *aux.Size
	}
	return nil
}
