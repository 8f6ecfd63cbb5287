package assets

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/louisbranch/inpact/internal/services/onboarding/objectstore"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
)

// cacheControl lets browsers reuse an object briefly. Uploads overwrite in
// place, so the lifetime stays short.
const cacheControl = "public, max-age=300"

type handlers struct {
	modulehandler.Base
	objects ObjectReader
}

func newHandlers(objects ObjectReader, base modulehandler.Base) handlers {
	return handlers{Base: base, objects: objects}
}

func (h handlers) handleObject(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	path, err := objectstore.CleanPath(r.PathValue("path"))
	if err != nil || !objectstore.ValidBucket(bucket) || h.objects == nil {
		h.WriteNotFound(w, r)
		return
	}
	object, err := h.objects.Get(h.RequestContext(r), bucket, path)
	if errors.Is(err, objectstore.ErrNotFound) {
		h.WriteNotFound(w, r)
		return
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("ETag", strconv.Quote(strconv.FormatInt(object.UpdatedAt.UnixNano(), 36)))
	http.ServeContent(w, r, path, object.UpdatedAt, bytes.NewReader(object.Data))
}
