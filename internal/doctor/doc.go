// Package doctor diagnoses and repairs the worktree registrations of a
// repository.
//
// Each linked worktree has an admin directory under
// <common-dir>/worktrees/<name> and a ".git" file in its checkout pointing
// back at it. Doctor reports:
//
//   - stale registrations whose checkout directory is gone or whose
//     metadata cannot be read (fixed with `git worktree prune`, unless the
//     worktree is locked)
//   - broken back-links, where the checkout's ".git" file does not point at
//     its admin directory, typically after the main checkout was moved
//     (fixed with `git worktree repair`)
//   - configuration files that fail to load (never fixed automatically)
//
// Run diagnostics:
//
//	res, err := doctor.Run(ctx, w, repo, doctor.Options{})          // check only
//	res, err := doctor.Run(ctx, w, repo, doctor.Options{Fix: true}) // check and fix
package doctor
