package generic

import (
	"github.com/poppolopoppo/sqlite3src/internal/base"
)

var LogGeneric = base.NewLogCategory("Generic")
