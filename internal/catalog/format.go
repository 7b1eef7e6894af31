package catalog

// Format is the archive format of a base distribution.
type Format int

// Supported and unsupported archive formats.
const (
	Unsupported Format = iota
	TarGz
	Zip
)

// ParseFormat maps a file type suffix such as "tar.gz" to a Format.
func ParseFormat(fileType string) Format {
	switch fileType {
	case "tar.gz":
		return TarGz
	case "zip":
		return Zip
	default:
		return Unsupported
	}
}

func (f Format) String() string {
	switch f {
	case TarGz:
		return "tar.gz"
	case Zip:
		return "zip"
	default:
		return "unsupported"
	}
}

// Supported reports whether archives of this format can be extracted and created.
func (f Format) Supported() bool {
	return f != Unsupported
}
