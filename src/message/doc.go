// Package message defines the wire model shared by every node: the Message
// envelope, its Body, and the Codec that turns newline-delimited JSON into
// typed messages and back.
//
// A Body is written as a single flat JSON object. The correlation ids and the
// payload discriminant sit next to the payload's own fields:
//
//  {"src":"c1","dest":"n1","body":{"msg_id":2,"type":"echo","echo":"hi"}}
//
// Payload variants are plain structs whose pointer type implements Payload.
// Each node package groups its variants behind a sealed interface and hands
// the constructors to NewCodec, which is the only place a tag is mapped to a
// Go type.
package message
