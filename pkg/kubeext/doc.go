// Package kubeext is a thin convenience layer over client-go.
//
// It provides:
//   - option builders with opinionated defaults (DeleteParams, ForegroundDelete,
//     PostParamsWithManager, PatchParamsWithManager)
//   - namespace-aware accessors for typed sub-clients (Client.Pods, Client.Nodes, ...)
//   - fetch and list helpers that turn "not found" into an absent result (GetOpt, List)
//   - relationship helpers built on owner references and label selectors
//     (GetPodsByDeployment, GetOwner)
//   - NotFoundOK, which makes deletes idempotent
//
// A namespaced accessor takes a Namespace value. Default() means the namespace the
// Client was configured with, not "cluster scoped":
//
//	c := kubeext.New(clientset, kubeext.WithDefaultNamespace("team-a"))
//	pod, err := c.GetPodOpt(ctx, "web-0", kubeext.Default())
//	if err != nil {
//		return err
//	}
//	if pod == nil {
//		// no such pod in team-a
//	}
//
// Errors coming back from the API server are returned unchanged; the only
// conversions are the explicit not-found ones.
package kubeext
