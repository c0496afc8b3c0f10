// Package casebot provides a CLI pipeline that answers questions about a
// company's delivered projects. It scrapes case-study pages, enriches each
// page with structured tags via a language model, indexes the enriched corpus
// for semantic search, and composes grounded answers from the top matches.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package casebot
