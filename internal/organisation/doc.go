// Package organisation provides organisation records and the
// user-organisation membership relation for orgstack.
//
// Access rules:
//   - An organisation is visible to a user who owns it OR is a member.
//     Visibility checks look at ownership first (a direct query on the
//     owner column), then fall back to the membership join.
//   - A lookup that fails either way reports the organisation as not
//     found — callers cannot distinguish "does not exist" from "exists
//     but not yours".
//   - Ownership and membership are independent: creating an organisation
//     does not insert a membership row for the owner.
//   - Only the owner may add members (see Service.AddMember).
package organisation
