// Package syllacal extracts calendar events from unstructured documents
// such as course syllabi, flyers, and schedule screenshots.
//
// Quick start:
//
//	x, err := syllacal.New(syllacal.WithGemini(os.Getenv("GEMINI_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events := x.ExtractText(ctx, syllabusText)
//	for _, ev := range events {
//	    fmt.Println(ev.Title, ev.Start)
//	}
//
// Without a backend the extractor still works: it falls back to scanning
// the text for date mentions and building one event per mention. The
// Extractor is safe for concurrent use.
package syllacal
