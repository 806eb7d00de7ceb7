// Package taxon ranks product taxonomy categories for free-text item
// titles using TF-IDF term vectors and cosine similarity. No external
// model is involved; the whole index lives in memory and rebuilds from
// the source text on demand.
//
// Quick start:
//
//	d, err := taxon.New(taxon.WithSourceURL("https://example.com/taxonomy.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := d.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	best, _ := d.DetectCategory("iphone 15 pro max case")
//	fmt.Println(best.ID, best.Path)
//
// The Detector is safe for concurrent use. Create once, Load at startup,
// reuse across requests; Refresh rebuilds the index without blocking
// in-flight detections.
package taxon
