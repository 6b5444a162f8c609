package utils

import (
	"io"
	"time"

	//lint:ignore ST1001 ignore dot imports warning
	. "github.com/poppolopoppo/sqlite3src/internal/base"
)

/***************************************
 * BuildStamp: remembers which configuration produced an artifact
 ***************************************/

type BuildStamp struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	Artifact    Filename    `json:"artifact"`
	BuiltAt     time.Time   `json:"built_at"`
}

func MakeBuildStamp(fingerprint Fingerprint, artifact Filename) BuildStamp {
	return BuildStamp{
		Fingerprint: fingerprint,
		Artifact:    artifact,
		BuiltAt:     time.Now().UTC(),
	}
}

func LoadBuildStamp(src Filename) (result BuildStamp, err error) {
	err = UFS.Open(src, func(r io.Reader) error {
		return JsonDeserialize(&result, r)
	})
	return
}
func (x BuildStamp) Save(dst Filename) error {
	return UFS.CreateBuffered(dst, func(w io.Writer) error {
		return JsonSerialize(&x, w, OptionJsonPrettyPrint(true))
	})
}

// UpToDate checks the stamp was produced by the same fingerprint and that its
// artifact still exists and is not older than any of the sources.
func (x BuildStamp) UpToDate(fingerprint Fingerprint, sources FileSet) bool {
	if x.Fingerprint != fingerprint {
		LogVerbose(LogUFS, "stamp fingerprint changed: %v -> %v", x.Fingerprint.ShortString(), fingerprint.ShortString())
		return false
	}
	if !x.Artifact.Valid() || !x.Artifact.Exists() {
		LogVerbose(LogUFS, "stamp artifact %q is missing", x.Artifact)
		return false
	}

	artifactTime, err := UFS.MTime(x.Artifact)
	if err != nil {
		return false
	}
	sourceTime, err := sources.NewestModTime()
	if err != nil {
		LogVerbose(LogUFS, "stamp sources: %v", err)
		return false
	}
	if artifactTime.Before(sourceTime) {
		LogVerbose(LogUFS, "stamp artifact %q is older than its sources", x.Artifact)
		return false
	}
	return true
}
