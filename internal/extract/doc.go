// Package extract copies many profile HMMs out of one model database into a
// single file.
//
// Extract feeds one task per model id to a fixed pool of fetch workers. Each
// worker fetches its model into a uniquely named temporary file and passes the
// task on to a single writer, which owns the output file, appends the
// temporary file to it and removes it. The workers and the writer share
// nothing but the two channels. Models land in the output in completion
// order, which is not the request order when more than one worker runs.
package extract
