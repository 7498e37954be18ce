// Package analyzer is a client for the job-fit scoring service.
//
// [Client.AnalyzeText] posts a job description as JSON, [Client.AnalyzeFile]
// uploads a document as multipart form data. Both return a [Result] carrying
// either a score with reasons or a single free-text reason.
//
// Identical texts submitted while a request is in flight share one upstream
// call. Different texts are never serialized or cancelled against each other.
package analyzer
