// Package core provides the business logic for business registration.
//
// This package contains all domain logic independent of any UI or transport
// layer. It is used by the web handlers, the bizctl CLI and tests without
// modification.
//
// # Architecture
//
// Three pieces cooperate on every submission:
//
//   - [Validator]: pure checks of the business fields and every item line.
//     Valid input is converted into typed [Business] and [Item] values.
//   - [Repository]: owns the business and items tables. [Repository.Create]
//     writes a business and its items in one transaction,
//     [Repository.ListAll] reads everything back nested.
//   - [Service]: orchestrates parse → validate → store and turns the outcome
//     into a [SubmissionResult]. A [SubmitLimiter] can cap concurrent writes.
//
// # Submission Flow
//
//  1. Caller hands [Service.HandleSubmission] the raw JSON body
//  2. [ParsePayload] tolerates missing fields (empty strings, empty item list)
//  3. The first failing rule produces a [ValidationError]; storage is never touched
//  4. Valid registrations are written atomically; failures become a [StorageError]
//
// # Error Handling
//
// Validation reasons are shown to the submitter verbatim. Storage failures
// are reported as "Database error!" while the cause is logged together with
// an operator code from [MapError]:
//
//   - DB001-DB009: Database errors (constraints, connections, deadlocks, busy)
//   - ERR000: Anything unclassified
package core
