// Package wire implements the line-oriented request/response framing used
// by every TCP leg in the system: client-to-coordinator,
// coordinator-to-shard, and (in tests) client-to-shard directly.
//
// # Overview
//
// A frame is the UTF-8 JSON encoding of an array of strings — commands in
// a request, results in a response — sent as a single write and expected
// to arrive within a single read of at least 2048 bytes (MinRecvBuffer).
// There is no length prefix: this package assumes one logical frame per
// read boundary, a known limitation carried over from the original
// recv(2048)-per-message design. A frame split across two reads is
// treated as a malformed-JSON error rather than reassembled, the same
// way the original single recv() call would have handed an incomplete
// buffer to json.loads.
//
// This is the direct descendant of the teacher repo's
// internal/cluster.PostJSON/GetJSON pair, which encoded the same
// "marshal a JSON request, read back a JSON response" shape over HTTP.
// Here the transport is a raw net.Conn instead of an *http.Client, so the
// helpers read and write frames directly rather than going through
// net/http.
//
// # Wire format
//
//	Request:   ["set mykey myvalue"]
//	Response:  ["Inserted"]
//
//	Request:   ["set k1 v1", "get k1"]     (batched commands, one frame)
//	Response:  ["Inserted", "v1"]
//
//	Request:   ["stats"]
//	Response:  ["{\"hit_rate\":0.82,...}"]  (the stats command's own
//	                                         payload is a JSON object,
//	                                         itself encoded as one of the
//	                                         frame's string elements)
//
// # Buffering
//
//	client ──write(frame)──▶ [ 64KiB read buffer ] ──▶ server
//	                              recvBufferSize
//
// recvBufferSize (64KiB) is comfortably above MinRecvBuffer (2KiB) so a
// batch of several commands in one frame doesn't get truncated under
// normal use; it is not a hard guarantee against an arbitrarily large
// batch, matching the original's fixed-size recv buffer rather than
// adding a framing protocol this system has never needed.
//
// # Error Handling
//
// ErrClosed signals a clean peer close (Read returning 0 bytes), the
// same condition the original's recv-returns-empty-string check handled.
// Any other read error, or a decode failure on whatever bytes did
// arrive, is wrapped with fmt.Errorf and %w so a caller can still
// errors.Is/As down to the underlying cause.
//
// # Usage
//
//	lines, err := wire.ReadFrame(conn)
//	if err != nil {
//	    if err == wire.ErrClosed {
//	        return // peer hung up
//	    }
//	    log.Printf("read frame: %v", err)
//	    return
//	}
//
//	results := process(lines)
//
//	if err := wire.WriteFrame(conn, results); err != nil {
//	    log.Printf("write frame: %v", err)
//	}
//
// # Testing
//
// frame_test.go drives ReadFrame/WriteFrame over an in-memory net.Pipe,
// covering a multi-element round trip, an empty array, malformed JSON, a
// peer that closed before the read, and a write past its deadline.
//
// # Future
//
// A length-prefixed variant (4-byte big-endian size, then payload) would
// remove the one-frame-per-read assumption entirely and let a frame
// exceed recvBufferSize safely, at the cost of breaking wire
// compatibility with the legacy recv(2048) clients this package exists
// to stay compatible with; not worth doing unless something in this
// system needs frames larger than 64KiB.
//
// # See Also
//
// Related packages:
//   - internal/coordinator: dials shards and frames requests/responses
//   - internal/shardnode: the server side of the same frame protocol
package wire
