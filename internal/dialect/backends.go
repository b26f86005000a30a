package dialect

import (
	"strings"
	"time"
	"unicode"

	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/idgen"
)

var registry = map[Target]*Dialect{
	MongoDB: {
		Target:         MongoDB,
		DefaultName:    "my_collection",
		IDField:        "_id",
		FlattenSep:     "_",
		Term:           "collection",
		CreatedField:   "created_at",
		UpdatedField:   "updated_at",
		nullLit:        "null",
		date:           func(iso string) string { return `new Date("` + iso + `")` },
		id:             func(id string) string { return `ObjectId("` + id + `")` },
		collectionName: pluralized,
		refField:       func(key string) string { return key + "_id" },
		newID:          func(src idgen.Source) string { return src.ObjectID() },
	},
	Firestore: {
		Target:         Firestore,
		DefaultName:    "my-collection",
		IDField:        "id",
		FlattenSep:     ".",
		Term:           "collection",
		CreatedField:   "createdAt",
		UpdatedField:   "updatedAt",
		nullLit:        "null",
		date:           func(iso string) string { return `admin.firestore.Timestamp.fromDate(new Date("` + iso + `"))` },
		id:             func(id string) string { return `"` + id + `"` },
		collectionName: entityTag,
		refField:       func(key string) string { return key + "Id" },
		newID:          func(src idgen.Source) string { return src.ShortID(20) },
	},
	DynamoDB: {
		Target:         DynamoDB,
		DefaultName:    "MyTable",
		IDField:        "id",
		FlattenSep:     ".",
		Term:           "table",
		CreatedField:   "createdAt",
		UpdatedField:   "updatedAt",
		nullLit:        "null",
		date:           func(iso string) string { return `new Date("` + iso + `").toISOString()` },
		id:             func(id string) string { return `"` + id + `"` },
		collectionName: entityTag,
		refField:       func(key string) string { return key + "Id" },
		newID:          func(src idgen.Source) string { return src.UUID() },
	},
	CouchDB: {
		Target:         CouchDB,
		DefaultName:    "my_database",
		IDField:        "_id",
		FlattenSep:     "_",
		Term:           "database",
		CreatedField:   "created_at",
		UpdatedField:   "updated_at",
		nullLit:        "null",
		date:           func(iso string) string { return `new Date("` + iso + `").toISOString()` },
		id:             func(id string) string { return `"` + id + `"` },
		collectionName: pluralized,
		refField:       func(key string) string { return key + "_id" },
		newID:          func(src idgen.Source) string { return strings.ReplaceAll(src.UUID(), "-", "") },
	},
}

// pluralized keeps keys that already look plural and appends "s" otherwise.
func pluralized(key string) string {
	if strings.HasSuffix(key, "s") {
		return key
	}
	return key + "s"
}

// entityTag turns a field key into a singular capitalized type tag:
// "orders" -> "Order", "address" -> "Address".
func entityTag(key string) string {
	if strings.HasSuffix(key, "s") && !strings.HasSuffix(key, "ss") && len(key) > 1 {
		key = key[:len(key)-1]
	}
	if key == "" {
		return key
	}
	r := []rune(key)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func timeOf(dt document.Date) time.Time {
	return time.Time(dt)
}
