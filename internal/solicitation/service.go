package solicitation

import (
	"errors"
	"fmt"

	"iso-settlement-api/internal/dao"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/logger"
	feemodel "iso-settlement-api/internal/model/fee"
	"iso-settlement-api/internal/utils"
)

var (
	ErrNotFound    = errors.New("solicitation not found")
	ErrEmptyTree   = errors.New("solicitation has no brands")
	ErrNotApproved = errors.New("solicitation not approved")
)

// Service drives the pricing-change lifecycle. Tree writes are wholesale
// replaces in the dao; this layer owns only the transition rules.
type Service struct {
	solDao *dao.SolicitationDao
	feeDao *dao.FeeDao
}

func NewService() *Service {
	return &Service{
		solDao: dao.NewSolicitationDao(),
		feeDao: dao.NewFeeDao(),
	}
}

func NewServiceWith(solDao *dao.SolicitationDao, feeDao *dao.FeeDao) *Service {
	return &Service{solDao: solDao, feeDao: feeDao}
}

// Create opens a proposal in PENDING with its full brand subtree.
func (s *Service) Create(req dto.CreateSolicitationReq) (uint64, error) {
	if len(req.Brands) == 0 {
		return 0, ErrEmptyTree
	}
	root := &feemodel.SolicitationFee{
		IDCustomer:              req.IDCustomer,
		IDMerchant:              req.IDMerchant,
		Name:                    req.Name,
		TableType:               defaultTableType(req.TableType),
		AnticipationType:        defaultAnticipationType(req.AnticipationType),
		CompulsoryAnticipation:  req.CompulsoryAnticipation,
		EventualAnticipationFee: utils.ParseMoney(req.EventualAnticipationFee),
		CardPixMdr:              utils.ParseMoney(req.CardPixMdr),
		NonCardPixMdr:           utils.ParseMoney(req.NonCardPixMdr),
		Status:                  feemodel.SolicitationPending,
		Description:             req.Description,
		CnaeInUse:               req.CnaeInUse,
	}
	id, err := s.solDao.InsertTree(root, brandsFromVo(req.Brands))
	if err != nil {
		return 0, err
	}
	logger.Solicitation.Infof("[SOLICITATION] created id=%d customer=%d brands=%d", id, req.IDCustomer, len(req.Brands))
	return id, nil
}

// RequestDocuments moves PENDING -> SEND_DOCUMENTS, no tree mutation.
func (s *Service) RequestDocuments(id uint64) error {
	return s.transition(id, feemodel.SolicitationPending, feemodel.SolicitationSendDocuments, "", false)
}

// Update reworks the proposal while documents are pending: scalar fields
// mutate, the brand tree is replaced wholesale, and the solicitation goes
// back to PENDING for re-review.
func (s *Service) Update(id uint64, req dto.UpdateSolicitationReq) error {
	if len(req.Brands) == 0 {
		return ErrEmptyTree
	}
	cur, err := s.solDao.GetByID(id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if cur.Status != feemodel.SolicitationSendDocuments {
		return fmt.Errorf("%w: update only in %s, current %s",
			ErrInvalidTransition, feemodel.SolicitationSendDocuments, cur.Status)
	}

	cur.Name = req.Name
	cur.TableType = defaultTableType(req.TableType)
	cur.AnticipationType = defaultAnticipationType(req.AnticipationType)
	cur.CompulsoryAnticipation = req.CompulsoryAnticipation
	cur.EventualAnticipationFee = utils.ParseMoney(req.EventualAnticipationFee)
	cur.CardPixMdr = utils.ParseMoney(req.CardPixMdr)
	cur.NonCardPixMdr = utils.ParseMoney(req.NonCardPixMdr)
	cur.Description = req.Description
	cur.CnaeInUse = req.CnaeInUse
	cur.Status = feemodel.SolicitationPending

	if err := s.solDao.ReplaceTree(cur, brandsFromVo(req.Brands)); err != nil {
		return err
	}
	logger.Solicitation.Infof("[SOLICITATION] updated id=%d, tree replaced with %d brands", id, len(req.Brands))
	return nil
}

// Approve moves PENDING -> APPROVED. Production pricing is untouched until
// the separate promote call.
func (s *Service) Approve(id uint64) error {
	return s.transition(id, feemodel.SolicitationPending, feemodel.SolicitationApproved, "", false)
}

// Complete moves APPROVED -> COMPLETED, terminal.
func (s *Service) Complete(id uint64) error {
	return s.transition(id, feemodel.SolicitationApproved, feemodel.SolicitationCompleted, "", false)
}

// Reject cancels any non-terminal solicitation. The reason overwrites the
// description as "CANCELED: <reason>"; a second reject on a canceled row
// fails instead of rewriting history.
func (s *Service) Reject(id uint64, reason string) error {
	cur, err := s.solDao.GetByID(id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if err := CheckTransition(cur.Status, feemodel.SolicitationCanceled); err != nil {
		return err
	}
	desc := "CANCELED"
	if reason != "" {
		desc = "CANCELED: " + reason
	}
	ok, err := s.solDao.TransitionStatus(id, cur.Status, feemodel.SolicitationCanceled, desc, true)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s lost race", ErrInvalidTransition, cur.Status, feemodel.SolicitationCanceled)
	}
	logger.Solicitation.Infof("[SOLICITATION] rejected id=%d from=%s", id, cur.Status)
	return nil
}

// Promote copies an APPROVED solicitation tree over the production fee
// root. Exposed to the admin-approval collaborator; does not change the
// solicitation status.
func (s *Service) Promote(id uint64, targetFeeRootID uint64) error {
	tree, err := s.solDao.LoadTree(id)
	if err != nil {
		return err
	}
	if tree == nil {
		return ErrNotFound
	}
	if tree.Status != feemodel.SolicitationApproved {
		return fmt.Errorf("%w: promote requires %s, current %s",
			ErrNotApproved, feemodel.SolicitationApproved, tree.Status)
	}
	root, err := s.feeDao.GetRoot(targetFeeRootID)
	if err != nil {
		return err
	}
	if root == nil {
		return fmt.Errorf("fee root %d not found", targetFeeRootID)
	}

	root.Name = tree.Name
	root.TableType = tree.TableType
	root.AnticipationType = tree.AnticipationType
	root.CompulsoryAnticipation = tree.CompulsoryAnticipation
	root.EventualAnticipationFee = tree.EventualAnticipationFee
	root.CardPixMdr = tree.CardPixMdr
	root.NonCardPixMdr = tree.NonCardPixMdr
	if err := s.feeDao.UpdateRoot(root); err != nil {
		return err
	}
	if err := s.feeDao.ReplaceTree(targetFeeRootID, PromotionBrands(tree)); err != nil {
		return err
	}
	logger.Solicitation.Infof("[SOLICITATION] promoted id=%d into fee root=%d", id, targetFeeRootID)
	return nil
}

// Get returns the solicitation row.
func (s *Service) Get(id uint64) (*feemodel.SolicitationFee, error) {
	return s.solDao.GetByID(id)
}

func (s *Service) transition(id uint64, from, to, description string, touchDescription bool) error {
	cur, err := s.solDao.GetByID(id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if cur.Status != from {
		return fmt.Errorf("%w: expected %s, current %s", ErrInvalidTransition, from, cur.Status)
	}
	if err := CheckTransition(from, to); err != nil {
		return err
	}
	ok, err := s.solDao.TransitionStatus(id, from, to, description, touchDescription)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s lost race", ErrInvalidTransition, from, to)
	}
	logger.Solicitation.Infof("[SOLICITATION] id=%d %s -> %s", id, from, to)
	return nil
}

// PromotionBrands maps the proposal tiers onto the production tree shape.
// The customer-facing variant becomes the billed price; admin and dock
// variants stay on the solicitation for audit.
func PromotionBrands(tree *feemodel.SolicitationTree) []feemodel.BrandTree {
	out := make([]feemodel.BrandTree, 0, len(tree.Brands))
	for _, b := range tree.Brands {
		bt := feemodel.BrandTree{
			FeeBrand: feemodel.FeeBrand{
				Brand:        b.Brand,
				GroupOrdinal: b.GroupOrdinal,
			},
		}
		for _, pt := range b.ProductTypes {
			bt.ProductTypes = append(bt.ProductTypes, feemodel.ProductTypeTree{
				FeeBrandProductType: feemodel.FeeBrandProductType{
					ProductType:                    pt.ProductType,
					InstallmentTransactionFeeStart: pt.InstallmentTransactionFeeStart,
					InstallmentTransactionFeeEnd:   pt.InstallmentTransactionFeeEnd,
					MdrPercent:                     pt.CustomerMdrPercent,
					NonCardMdrPercent:              pt.CustomerMdrPercent,
					TransactionFeeAmount:           pt.CustomerFeeAmount,
					NonCardTransactionFeeAmount:    pt.CustomerFeeAmount,
				},
			})
		}
		out = append(out, bt)
	}
	return out
}

func brandsFromVo(brands []dto.BrandVo) []feemodel.SolicitationBrandTree {
	out := make([]feemodel.SolicitationBrandTree, 0, len(brands))
	for _, b := range brands {
		bt := feemodel.SolicitationBrandTree{
			SolicitationFeeBrand: feemodel.SolicitationFeeBrand{
				Brand:        b.Brand,
				GroupOrdinal: b.GroupOrdinal,
			},
		}
		for _, pt := range b.ProductTypes {
			bt.ProductTypes = append(bt.ProductTypes, feemodel.SolicitationBrandProductType{
				ProductType:                    pt.ProductType,
				InstallmentTransactionFeeStart: pt.InstallmentStart,
				InstallmentTransactionFeeEnd:   pt.InstallmentEnd,
				CustomerMdrPercent:             utils.ParseMoney(pt.CustomerMdr),
				AdminMdrPercent:                utils.ParseMoney(pt.AdminMdr),
				DockMdrPercent:                 utils.ParseMoney(pt.DockMdr),
				CustomerFeeAmount:              utils.ParseMoney(pt.CustomerFee),
				AdminFeeAmount:                 utils.ParseMoney(pt.AdminFee),
				DockFeeAmount:                  utils.ParseMoney(pt.DockFee),
			})
		}
		out = append(out, bt)
	}
	return out
}

func defaultTableType(t string) string {
	if t == "" {
		return feemodel.TableTypeSimple
	}
	return t
}

func defaultAnticipationType(t string) string {
	if t == "" {
		return feemodel.AnticipationNone
	}
	return t
}
